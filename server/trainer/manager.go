package trainer

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gto-rangelab/server/engine"
	"gto-rangelab/server/spots"
	"gto-rangelab/server/strategy"
)

// Decision is one graded hero choice inside a session.
type Decision struct {
	NodePath     []string       `json:"node_path"`
	ChosenAction string         `json:"chosen_action"`
	GtoFreq      float64        `json:"gto_freq"`
	Grade        strategy.Grade `json:"grade"`
	AllActions   []ActionOption `json:"all_actions"`
	PotWeight    float64        `json:"pot_weight"`
	Street       string         `json:"street"`
}

// Session is a live training hand. Owned by the Manager; callers see
// read-only snapshots through State.
type Session struct {
	ID              string
	Player          string
	SpotKey         string
	PositionMatchup string
	HeroPosition    string
	HeroCombo       string
	Board           []engine.Card
	Pot             float64
	EffectiveStack  float64
	StartedAt       time.Time

	path          *strategy.Path
	blocked       map[string]bool
	actionHistory []string
	decisions     []Decision
	terminal      bool
}

// State is the view of a session returned after start and after every
// hero action.
type State struct {
	SessionID        string         `json:"session_id"`
	SpotKey          string         `json:"spot_key"`
	PositionMatchup  string         `json:"position_matchup"`
	HeroPosition     string         `json:"hero_position"`
	HeroCombo        string         `json:"hero_combo"`
	Board            string         `json:"board"`
	HandClass        string         `json:"hand_class"`
	Pot              float64        `json:"pot"`
	EffectiveStack   float64        `json:"effective_stack"`
	Street           string         `json:"street"`
	NodePath         []string       `json:"node_path"`
	ActionHistory    []string       `json:"action_history"`
	AvailableActions []ActionOption `json:"available_actions"`
	IsTerminal       bool           `json:"is_terminal"`
	ScenarioContext  string         `json:"scenario_context"`
	Decisions        []Decision     `json:"decisions"`
}

// Result summarizes a completed session.
type Result struct {
	SessionID string     `json:"session_id"`
	Player    string     `json:"player_name"`
	Score     float64    `json:"score"`
	Decisions []Decision `json:"decisions"`
	Hands     int        `json:"hands"`
}

// Manager holds live sessions in memory. Completed and abandoned
// sessions are removed; the durable record lives in the store.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	rng      *rand.Rand
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start deals a new hand for player on the given solved spot.
func (m *Manager) Start(player string, spot spots.Spot, tree *strategy.Node) (*State, error) {
	board, err := engine.ParseBoard(spot.Board)
	if err != nil {
		return nil, fmt.Errorf("spot %s board: %w", spot.Key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	heroPosition := "oop"
	if m.rng.Intn(2) == 1 {
		heroPosition = "ip"
	}
	rangeStr := spot.RangeOOP
	if heroPosition == "ip" {
		rangeStr = spot.RangeIP
	}
	combos := engine.CombosForRange(engine.ParseRange(rangeStr), board)
	if len(combos) == 0 {
		return nil, fmt.Errorf("spot %s: no dealable combos for %s range", spot.Key, heroPosition)
	}
	heroCombo := combos[m.rng.Intn(len(combos))]

	blocked := make(map[string]bool, len(board)+2)
	for _, c := range board {
		blocked[c.String()] = true
	}
	blocked[heroCombo[:2]] = true
	blocked[heroCombo[2:]] = true

	s := &Session{
		ID:              uuid.NewString(),
		Player:          player,
		SpotKey:         spot.Key,
		PositionMatchup: spot.PositionMatchup,
		HeroPosition:    heroPosition,
		HeroCombo:       heroCombo,
		Board:           board,
		Pot:             spot.Pot,
		EffectiveStack:  spot.EffectiveStack,
		StartedAt:       time.Now(),
		path:            strategy.NewPath(tree),
		blocked:         blocked,
	}
	history, terminal := AdvanceToHero(s.path, heroPosition, heroCombo, blocked, m.rng)
	s.actionHistory = history
	s.terminal = terminal

	m.sessions[s.ID] = s
	return m.stateLocked(s)
}

// Act applies the hero's chosen action, grades it, and advances play to
// the next hero node or the end of the line.
func (m *Manager) Act(sessionID, action string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if s.terminal {
		return nil, fmt.Errorf("session %s is already over", sessionID)
	}
	n := s.path.Current()
	if n == nil || n.Type != strategy.ActionNode {
		return nil, fmt.Errorf("session %s: not at a decision point", sessionID)
	}

	opts, err := AvailableActions(n, s.HeroCombo)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	var chosen *ActionOption
	for i := range opts {
		if opts[i].Name == action {
			chosen = &opts[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("session %s: action %q not available", sessionID, action)
	}

	nodePath := s.path.Labels()
	street := ComputeStreet(nodePath)
	potAtDecision := s.potAtCurrentNode()
	potWeight := potAtDecision / maxf(s.Pot, 1)

	s.decisions = append(s.decisions, Decision{
		NodePath:     nodePath,
		ChosenAction: chosen.Name,
		GtoFreq:      chosen.GtoFreq,
		Grade:        strategy.GradeDecision(chosen.GtoFreq),
		AllActions:   opts,
		PotWeight:    potWeight,
		Street:       street,
	})

	if chosen.Name == "FOLD" {
		s.actionHistory = append(s.actionHistory, "H:FOLD")
		s.terminal = true
		return m.stateLocked(s)
	}
	if err := s.path.Push(chosen.Name); err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.actionHistory = append(s.actionHistory, "H:"+chosen.Name)

	history, terminal := AdvanceToHero(s.path, s.HeroPosition, s.HeroCombo, s.blocked, m.rng)
	s.actionHistory = append(s.actionHistory, history...)
	s.terminal = terminal
	return m.stateLocked(s)
}

// Complete scores the session and removes it from memory.
func (m *Manager) Complete(sessionID string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	delete(m.sessions, sessionID)

	freqs := make([]float64, len(s.decisions))
	for i, d := range s.decisions {
		freqs[i] = d.GtoFreq
	}
	return &Result{
		SessionID: s.ID,
		Player:    s.Player,
		Score:     round4(strategy.SessionScore(freqs)),
		Decisions: s.decisions,
		Hands:     1,
	}, nil
}

// Snapshot returns the current state of a live session.
func (m *Manager) Snapshot(sessionID string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	return m.stateLocked(s)
}

// CurrentNode exposes the node the session is paused at, for the
// strategy matrix endpoint.
func (m *Manager) CurrentNode(sessionID string) (*strategy.Node, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, "", fmt.Errorf("session %s not found", sessionID)
	}
	return s.path.Current(), s.HeroCombo, nil
}

func (m *Manager) stateLocked(s *Session) (*State, error) {
	st := &State{
		SessionID:       s.ID,
		SpotKey:         s.SpotKey,
		PositionMatchup: s.PositionMatchup,
		HeroPosition:    s.HeroPosition,
		HeroCombo:       s.HeroCombo,
		Board:           s.boardString(),
		HandClass:       engine.HandClass(s.HeroCombo, s.fullBoard()),
		Pot:             s.Pot,
		EffectiveStack:  s.EffectiveStack,
		Street:          ComputeStreet(s.path.Labels()),
		NodePath:        s.path.Labels(),
		ActionHistory:   append([]string(nil), s.actionHistory...),
		IsTerminal:      s.terminal,
		ScenarioContext: ScenarioContext(s.PositionMatchup, s.HeroPosition),
		Decisions:       append([]Decision(nil), s.decisions...),
	}
	if !s.terminal {
		if n := s.path.Current(); n != nil && n.Type == strategy.ActionNode {
			opts, err := AvailableActions(n, s.HeroCombo)
			if err != nil {
				return nil, fmt.Errorf("session %s: %w", s.ID, err)
			}
			st.AvailableActions = opts
		}
	}
	return st, nil
}

// fullBoard is the spot flop plus any cards dealt during the session.
func (s *Session) fullBoard() []engine.Card {
	out := append([]engine.Card(nil), s.Board...)
	for _, step := range s.path.Labels() {
		if cardPat.MatchString(step) {
			if c, err := engine.ParseCard(step); err == nil {
				out = append(out, c)
			}
		}
	}
	return out
}

func (s *Session) boardString() string {
	cards := s.fullBoard()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// potAtCurrentNode estimates the pot at the hero's decision by summing
// bet and raise amounts along the path onto the starting pot. Labels
// carry chip amounts, e.g. "BET 23".
func (s *Session) potAtCurrentNode() float64 {
	pot := s.Pot
	for _, step := range s.path.Labels() {
		var amt float64
		if n, err := fmt.Sscanf(step, "BET %f", &amt); err == nil && n == 1 {
			pot += amt
		} else if n, err := fmt.Sscanf(step, "RAISE %f", &amt); err == nil && n == 1 {
			pot += amt
		}
	}
	return pot
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
