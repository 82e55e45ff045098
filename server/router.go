package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"gto-rangelab/server/engine"
	"gto-rangelab/server/parser"
	"gto-rangelab/server/ranges"
	"gto-rangelab/server/solver"
	"gto-rangelab/server/store"
	"gto-rangelab/server/strategy"
	"gto-rangelab/server/trainer"
)

func Router(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, map[string]any{"ok": app.DB.Ping(req.Context()) == nil})
		})

		r.Route("/solve", func(r chi.Router) {
			r.Post("/", app.handleSolveSubmit)
			r.Get("/{jobID}", app.handleSolveStatus)
			r.Get("/{jobID}/result", app.handleSolveResult)
		})

		r.Route("/spots", func(r chi.Router) {
			r.Get("/", app.handleListSpots)
			r.Post("/{key}/solve", app.handleSpotSolve)
			r.Get("/{key}/strategy", app.handleSpotStrategy)
		})

		r.Route("/trainer", func(r chi.Router) {
			r.Post("/sessions", app.handleSessionStart)
			r.Get("/sessions/{id}", app.handleSessionGet)
			r.Post("/sessions/{id}/action", app.handleSessionAction)
			r.Post("/sessions/{id}/complete", app.handleSessionComplete)
			r.Get("/sessions/{id}/matrix", app.handleSessionMatrix)
			r.Get("/stats", app.handleTrainerStats)
			r.Get("/history", app.handleTrainerHistory)
		})

		r.Route("/hands", func(r chi.Router) {
			r.Post("/upload", app.handleHandsUpload)
			r.Get("/", app.handleHandsList)
			r.Get("/players", app.handleHandsPlayers)
			r.Post("/reprocess", app.handleHandsReprocess)
			r.Get("/stats/summary", app.handleStatsSummary)
			r.Get("/stats/by-position", app.handleStatsByPosition)
			r.Get("/stats/timeline", app.handleStatsTimeline)
			r.Get("/{id}", app.handleHandGet)
			r.Delete("/{id}", app.handleHandDelete)
			r.Get("/{id}/gto-analysis", app.handleHandAnalysis)
		})

		r.Route("/ranges", func(r chi.Router) {
			r.Get("/", app.handleRangesList)
			r.Get("/scenarios", func(w http.ResponseWriter, req *http.Request) {
				writeJSON(w, ranges.Scenarios)
			})
			r.Get("/deviation", app.handleRangeDeviation)
			r.Get("/villain/{name}/stats", app.handleVillainStats)
			r.Put("/{scenario}", app.handleRangeSave)
			r.Delete("/{scenario}", app.handleRangeDelete)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func playerName(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("player_name"))
}

/* -----------------------------
   Solver jobs
------------------------------*/

func (a *App) handleSolveSubmit(w http.ResponseWriter, r *http.Request) {
	var req solver.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", 400)
		return
	}
	if req.Board == "" || req.RangeIP == "" || req.RangeOOP == "" {
		http.Error(w, "board, range_ip and range_oop are required", 400)
		return
	}
	job, err := a.Runner.Submit(req)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, job)
}

func (a *App) handleSolveStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := a.Runner.Job(chi.URLParam(r, "jobID"))
	if !ok {
		http.Error(w, "job not found", 404)
		return
	}
	writeJSON(w, job)
}

func (a *App) handleSolveResult(w http.ResponseWriter, r *http.Request) {
	job, ok := a.Runner.Job(chi.URLParam(r, "jobID"))
	if !ok {
		http.Error(w, "job not found", 404)
		return
	}
	if job.Status != solver.StatusDone {
		http.Error(w, "job not finished", http.StatusConflict)
		return
	}
	http.ServeFile(w, r, job.ResultPath)
}

/* -----------------------------
   Spots
------------------------------*/

func (a *App) handleListSpots(w http.ResponseWriter, r *http.Request) {
	rows, err := a.DB.ListSpots(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	type Row struct {
		Key             string     `json:"spot_key"`
		Label           string     `json:"label"`
		PositionMatchup string     `json:"position_matchup"`
		BoardTexture    string     `json:"board_texture"`
		Board           string     `json:"board"`
		Pot             float64    `json:"pot"`
		EffectiveStack  float64    `json:"effective_stack"`
		SolveStatus     string     `json:"solve_status"`
		SolvedAt        *time.Time `json:"solved_at"`
	}
	out := []Row{}
	for _, s := range rows {
		out = append(out, Row{
			Key: s.Key, Label: s.Label, PositionMatchup: s.PositionMatchup,
			BoardTexture: s.BoardTexture, Board: s.Board,
			Pot: s.Pot, EffectiveStack: s.EffectiveStack,
			SolveStatus: s.SolveStatus, SolvedAt: s.SolvedAt,
		})
	}
	writeJSON(w, map[string]any{"spots": out})
}

func (a *App) handleSpotSolve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	row, err := a.DB.GetSpot(r.Context(), key)
	if err != nil {
		http.Error(w, "spot not found", 404)
		return
	}
	if row.SolveStatus == "solving" {
		http.Error(w, "already solving", http.StatusConflict)
		return
	}
	if row.SolveStatus != "pending" {
		// re-solve: flip back first so ClaimSpot can take it
		if err := a.DB.FinishSpot(r.Context(), key, false, ""); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if _, err := a.DB.Exec(r.Context(),
			`UPDATE trainer_spots SET solve_status = 'pending' WHERE spot_key = $1`, key); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	}
	a.KickSpot(key)
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]any{"spot_key": key, "status": "queued"})
}

// cellGrid flattens the 13x13 aggregation into name keyed cells.
func cellGrid(strat map[string][]float64, actionCount int) map[string]*strategy.CellAggregate {
	grid := strategy.AggregateCells(strat, actionCount)
	out := map[string]*strategy.CellAggregate{}
	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			if grid[row][col] != nil {
				out[engine.CellName(row, col)] = grid[row][col]
			}
		}
	}
	return out
}

func nodeStrategyPayload(n *strategy.Node, combo, cell string) (map[string]any, error) {
	out := map[string]any{
		"node_type": string(n.Type),
		"player":    n.Player,
	}
	if n.Type == strategy.ChanceNode {
		out["deal_cards"] = n.DealKeys()
		return out, nil
	}
	entries, err := strategy.ActionEntries(n)
	if err != nil {
		return nil, err
	}
	out["actions"] = entries
	out["range_actions"] = strategy.AggregateActions(n.Strategy, entries)
	out["cells"] = cellGrid(n.Strategy, len(entries))
	if combo != "" {
		opts, err := trainer.AvailableActions(n, combo)
		if err != nil {
			return nil, err
		}
		out["combo_actions"] = opts
	}
	if cell != "" {
		for row := 0; row < 13; row++ {
			for col := 0; col < 13; col++ {
				if engine.CellName(row, col) == cell {
					out["cell_combos"] = strategy.CombosForCell(n.Strategy, row, col)
				}
			}
		}
	}
	return out, nil
}

func (a *App) handleSpotStrategy(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	tree, row, err := a.SpotTree(r.Context(), key)
	if err == errSpotNotReady {
		writeJSON(w, map[string]any{"spot_key": key, "status": row.SolveStatus})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	path := strategy.NewPath(tree)
	q := r.URL.Query()
	if steps := q.Get("path"); steps != "" {
		for _, label := range strings.Split(steps, ",") {
			if err := path.Push(strings.TrimSpace(label)); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
		}
	}
	payload, err := nodeStrategyPayload(path.Current(), q.Get("combo"), q.Get("cell"))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	payload["spot_key"] = key
	payload["node_path"] = path.Labels()
	writeJSON(w, payload)
}

/* -----------------------------
   Trainer sessions
------------------------------*/

func (a *App) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlayerName string `json:"player_name"`
		SpotKey    string `json:"spot_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", 400)
		return
	}
	if body.PlayerName == "" || body.SpotKey == "" {
		http.Error(w, "player_name and spot_key are required", 400)
		return
	}
	tree, row, err := a.SpotTree(r.Context(), body.SpotKey)
	if err == errSpotNotReady {
		http.Error(w, "spot not solved yet", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	st, err := a.Sessions.Start(body.PlayerName, row.Spot(), tree)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if err := a.DB.InsertSession(r.Context(), st.SessionID, body.PlayerName,
		body.SpotKey, st.HeroPosition, st.HeroCombo); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, st)
}

func (a *App) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	st, err := a.Sessions.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), 404)
		return
	}
	writeJSON(w, st)
}

func (a *App) handleSessionAction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Action == "" {
		http.Error(w, "action is required", 400)
		return
	}
	st, err := a.Sessions.Act(chi.URLParam(r, "id"), body.Action)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	writeJSON(w, st)
}

func (a *App) handleSessionComplete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, err := a.Sessions.Snapshot(id)
	if err != nil {
		http.Error(w, err.Error(), 404)
		return
	}
	res, err := a.Sessions.Complete(id)
	if err != nil {
		http.Error(w, err.Error(), 404)
		return
	}
	ctx := r.Context()
	if err := a.DB.CompleteSession(ctx, id, res.Score, res.Decisions); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if err := a.DB.RecordSpotScore(ctx, res.Player, st.SpotKey, res.Score); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, res)
}

func (a *App) handleSessionMatrix(w http.ResponseWriter, r *http.Request) {
	node, combo, err := a.Sessions.CurrentNode(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), 404)
		return
	}
	if node == nil {
		http.Error(w, "session is over", http.StatusConflict)
		return
	}
	payload, err := nodeStrategyPayload(node, combo, r.URL.Query().Get("cell"))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, payload)
}

func (a *App) handleTrainerStats(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	rows, err := a.DB.SpotStats(r.Context(), player)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]any{"stats": rows})
}

func (a *App) handleTrainerHistory(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := a.DB.ListSessions(r.Context(), player, limit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]any{"sessions": rows})
}

/* -----------------------------
   Hands
------------------------------*/

func handFilter(r *http.Request) store.HandFilter {
	q := r.URL.Query()
	f := store.HandFilter{Position: strings.ToUpper(q.Get("position"))}
	f.ThreeBetPot = q.Get("three_bet_pot") == "true"
	if t, err := time.Parse(time.RFC3339, q.Get("date_from")); err == nil {
		f.From = t
	}
	if t, err := time.Parse(time.RFC3339, q.Get("date_to")); err == nil {
		f.To = t
	}
	return f
}

func (a *App) handleHandsUpload(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	var text string
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		text = string(raw)
	} else {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		text = string(raw)
	}

	parsed := parser.ParseFile(text, player)
	imported, skipped := 0, 0
	for _, h := range parsed {
		_, inserted, err := a.DB.InsertHand(r.Context(), player, h)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if inserted {
			imported++
		} else {
			skipped++
		}
	}
	writeJSON(w, map[string]any{
		"parsed":     len(parsed),
		"imported":   imported,
		"duplicates": skipped,
	})
}

func (a *App) handleHandsList(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	rows, err := a.DB.ListHands(r.Context(), player, handFilter(r), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	type Row struct {
		ID             string    `json:"id"`
		HandID         string    `json:"hand_id_raw"`
		PlayedAt       time.Time `json:"played_at"`
		StakesBB       int       `json:"stakes_bb"`
		TableName      string    `json:"table_name"`
		HeroPosition   string    `json:"hero_position"`
		HeroHoleCards  string    `json:"hero_hole_cards"`
		Board          string    `json:"board"`
		HeroResult     int       `json:"hero_result"`
		HeroWon        bool      `json:"hero_won"`
		WentToShowdown bool      `json:"went_to_showdown"`
		VPIP           bool      `json:"vpip"`
		PFR            bool      `json:"pfr"`
	}
	out := []Row{}
	for _, hr := range rows {
		h := hr.Hand
		out = append(out, Row{
			ID: hr.ID, HandID: h.HandID, PlayedAt: h.PlayedAt, StakesBB: h.StakesBB,
			TableName: h.TableName, HeroPosition: h.HeroPosition,
			HeroHoleCards: h.HeroHoleCards, Board: h.Board,
			HeroResult: h.HeroResult, HeroWon: h.HeroWon,
			WentToShowdown: h.WentToShowdown, VPIP: h.VPIP, PFR: h.PFR,
		})
	}
	writeJSON(w, map[string]any{"hands": out})
}

func (a *App) handleHandsPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := a.DB.ListPlayers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if players == nil {
		players = []string{}
	}
	writeJSON(w, players)
}

func (a *App) handleHandsReprocess(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	raws, err := a.DB.RawHands(r.Context(), player)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	updated := 0
	for id, raw := range raws {
		h, ok := parser.ParseHand(raw, player)
		if !ok {
			continue
		}
		if err := a.DB.UpdateHandStats(r.Context(), id, h); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		updated++
	}
	writeJSON(w, map[string]any{"reprocessed": updated})
}

func (a *App) statHands(w http.ResponseWriter, r *http.Request) ([]*parser.Hand, bool) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return nil, false
	}
	rows, err := a.DB.ListHands(r.Context(), player, handFilter(r), 0, 0)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return nil, false
	}
	hands := make([]*parser.Hand, len(rows))
	for i, hr := range rows {
		hands[i] = hr.Hand
	}
	return hands, true
}

func (a *App) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	hands, ok := a.statHands(w, r)
	if !ok {
		return
	}
	writeJSON(w, parser.ComputeSummary(hands))
}

func (a *App) handleStatsByPosition(w http.ResponseWriter, r *http.Request) {
	hands, ok := a.statHands(w, r)
	if !ok {
		return
	}
	writeJSON(w, parser.ComputeByPosition(hands))
}

func (a *App) handleStatsTimeline(w http.ResponseWriter, r *http.Request) {
	hands, ok := a.statHands(w, r)
	if !ok {
		return
	}
	writeJSON(w, parser.ComputeTimeline(hands))
}

func (a *App) handleHandGet(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	hr, err := a.DB.GetHand(r.Context(), chi.URLParam(r, "id"), player)
	if err != nil {
		http.Error(w, "hand not found", 404)
		return
	}
	writeJSON(w, map[string]any{
		"id":               hr.ID,
		"hand_id_raw":      hr.Hand.HandID,
		"played_at":        hr.Hand.PlayedAt,
		"stakes_bb":        hr.Hand.StakesBB,
		"table_name":       hr.Hand.TableName,
		"hero_position":    hr.Hand.HeroPosition,
		"hero_hole_cards":  hr.Hand.HeroHoleCards,
		"board":            hr.Hand.Board,
		"hand_class":       engine.HandClass(hr.Hand.HeroHoleCards, boardCards(hr.Hand.Board)),
		"pot_total":        hr.Hand.PotTotal,
		"hero_result":      hr.Hand.HeroResult,
		"hero_won":         hr.Hand.HeroWon,
		"went_to_showdown": hr.Hand.WentToShowdown,
		"vpip":             hr.Hand.VPIP,
		"pfr":              hr.Hand.PFR,
		"actions":          hr.Hand.Actions,
		"raw_text":         hr.Hand.RawText,
	})
}

// boardCards splits concatenated board text like "AcKhQd2s" into cards.
func boardCards(board string) []engine.Card {
	var out []engine.Card
	for i := 0; i+2 <= len(board); i += 2 {
		c, err := engine.ParseCard(board[i : i+2])
		if err != nil {
			return nil
		}
		out = append(out, c)
	}
	return out
}

func (a *App) handleHandDelete(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	if err := a.DB.DeleteHand(r.Context(), chi.URLParam(r, "id"), player); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "hand not found", 404)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleHandAnalysis(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	out, err := a.AnalyzeHand(r.Context(), chi.URLParam(r, "id"), player)
	if err != nil {
		http.Error(w, "hand not found", 404)
		return
	}
	writeJSON(w, out)
}

/* -----------------------------
   Ranges
------------------------------*/

func (a *App) handleRangesList(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	saved, err := a.DB.SavedRanges(r.Context(), player)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	type Entry struct {
		ranges.Scenario
		RangeStr  string `json:"range_str"`
		IsDefault bool   `json:"is_default"`
	}
	out := []Entry{}
	for _, sc := range ranges.Scenarios {
		e := Entry{Scenario: sc, RangeStr: ranges.DefaultRange(sc.Key), IsDefault: true}
		if s, ok := saved[sc.Key]; ok {
			e.RangeStr, e.IsDefault = s, false
		}
		out = append(out, e)
	}
	writeJSON(w, out)
}

func (a *App) handleRangeSave(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	key := chi.URLParam(r, "scenario")
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	sc, ok := ranges.ScenarioByKey(key)
	if !ok {
		http.Error(w, "unknown scenario", 404)
		return
	}
	var body struct {
		RangeStr string `json:"range_str"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", 400)
		return
	}
	// normalize through the matrix so junk tokens don't persist
	normalized := engine.SerializeRange(engine.ParseRange(body.RangeStr))
	if err := a.DB.SaveRange(r.Context(), player, key, normalized); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]any{
		"scenario_key":   sc.Key,
		"scenario_label": sc.Label,
		"category":       sc.Category,
		"range_str":      normalized,
		"is_default":     false,
	})
}

func (a *App) handleRangeDelete(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	if err := a.DB.DeleteRange(r.Context(), player, chi.URLParam(r, "scenario")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "no saved range for scenario", 404)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]any{"reset": true})
}

func (a *App) handleRangeDeviation(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	if player == "" {
		http.Error(w, "player_name is required", 400)
		return
	}
	ctx := r.Context()
	rows, err := a.DB.ListHands(ctx, player, store.HandFilter{}, 0, 0)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	facts := make([]ranges.HandFacts, 0, len(rows))
	for _, hr := range rows {
		h := hr.Hand
		facts = append(facts, ranges.HandFacts{
			Position:     h.HeroPosition,
			HoleCards:    h.HeroHoleCards,
			VPIP:         h.VPIP,
			PFR:          h.PFR,
			ThreeBet:     h.ThreeBet,
			ThreeBetOppo: h.ThreeBetOppo,
		})
	}
	saved, err := a.DB.SavedRanges(ctx, player)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, ranges.ComputeDeviation(facts, saved))
}

func (a *App) handleVillainStats(w http.ResponseWriter, r *http.Request) {
	player := playerName(r)
	villain := chi.URLParam(r, "name")
	if player == "" || villain == "" {
		http.Error(w, "player_name and villain name are required", 400)
		return
	}
	raws, err := a.DB.RawHands(r.Context(), player)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	type agg struct{ total, vpip, pfr, threeBet int }
	perPos := map[string]*agg{}
	sampled := 0
	for _, raw := range raws {
		fact, ok := parser.ExtractVillainData(raw, villain)
		if !ok {
			continue
		}
		sampled++
		c := perPos[fact.Position]
		if c == nil {
			c = &agg{}
			perPos[fact.Position] = c
		}
		c.total++
		if fact.VPIP {
			c.vpip++
		}
		if fact.PFR {
			c.pfr++
		}
		if fact.Is3Bet {
			c.threeBet++
		}
	}

	type PosStat struct {
		Position       string  `json:"position"`
		TotalHands     int     `json:"total_hands"`
		VPIP           int     `json:"vpip"`
		PFR            int     `json:"pfr"`
		ThreeBet       int     `json:"three_bet"`
		VPIPPct        float64 `json:"vpip_pct"`
		PFRPct         float64 `json:"pfr_pct"`
		ThreeBetPct    float64 `json:"three_bet_pct"`
		EstimatedRange string  `json:"estimated_range"`
	}
	out := []PosStat{}
	for _, pos := range ranges.Positions {
		c := perPos[pos]
		if c == nil || c.total == 0 {
			continue
		}
		vpipPct := roundPct(c.vpip, c.total)
		out = append(out, PosStat{
			Position: pos, TotalHands: c.total,
			VPIP: c.vpip, PFR: c.pfr, ThreeBet: c.threeBet,
			VPIPPct:        vpipPct,
			PFRPct:         roundPct(c.pfr, c.total),
			ThreeBetPct:    roundPct(c.threeBet, c.total),
			EstimatedRange: ranges.EstimateRangeFromPct(vpipPct),
		})
	}
	writeJSON(w, map[string]any{
		"villain_name":        villain,
		"total_hands_sampled": sampled,
		"positions":           out,
	})
}

func roundPct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(int(float64(n)/float64(total)*1000+0.5)) / 10
}
