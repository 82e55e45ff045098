package trainer

import (
	"sort"
	"strings"

	"gto-rangelab/server/parser"
	"gto-rangelab/server/strategy"
)

// Postflop acting order, leftmost acts first. SB posts the small blind
// and acts before BB postflop; BB acts before every other position.
var postflopOrder = []string{"SB", "BB", "EP", "HJ", "CO", "BTN"}

// Matchups with solved ranges, keyed by (ip, oop).
var solvedMatchups = map[[2]string]string{
	{"BTN", "BB"}: "BTN_vs_BB",
	{"CO", "BB"}:  "CO_vs_BB",
	{"HJ", "BB"}:  "HJ_vs_BB",
	{"BB", "SB"}:  "SB_vs_BB", // BB is IP vs SB postflop
}

func postflopIndex(pos string) int {
	for i, p := range postflopOrder {
		if p == pos {
			return i
		}
	}
	return -1
}

// PostflopRole reports "ip" when hero acts after villain postflop.
func PostflopRole(heroPos, villainPos string) string {
	h, v := postflopIndex(heroPos), postflopIndex(villainPos)
	if h < 0 || v < 0 {
		return "unknown"
	}
	if h > v {
		return "ip"
	}
	return "oop"
}

// ResolveMatchup picks the best solved matchup for a hero position. The
// villain's position is not stored per hand, so BB assumes a BTN raiser,
// the most common single raised pot. EP has no solved spots.
func ResolveMatchup(heroPos string) (matchup, role string, ok bool) {
	var ip, oop string
	switch heroPos {
	case "BTN", "CO", "HJ":
		ip, oop = heroPos, "BB"
	case "SB":
		ip, oop = "BB", "SB"
	case "BB":
		ip, oop = "BTN", "BB"
	default:
		return "", "", false
	}
	key, found := solvedMatchups[[2]string{ip, oop}]
	if !found {
		return "", "", false
	}
	villain := oop
	if heroPos != ip {
		villain = ip
	}
	return key, PostflopRole(heroPos, villain), true
}

// MapVerbToSolver maps a parsed action verb onto the closest child label
// of the current tree node. Bets and raises snap to the smallest sizing.
func MapVerbToSolver(verb string, children []string) (string, bool) {
	switch verb {
	case "checks", "calls", "folds":
		want := map[string]string{"checks": "CHECK", "calls": "CALL", "folds": "FOLD"}[verb]
		for _, c := range children {
			if c == want {
				return want, true
			}
		}
		return "", false
	case "bets", "raises":
		prefix := "BET"
		if verb == "raises" {
			prefix = "RAISE"
		}
		var matches []string
		for _, c := range children {
			if strings.HasPrefix(c, prefix) {
				matches = append(matches, c)
			}
		}
		if len(matches) == 0 {
			return "", false
		}
		sort.Strings(matches)
		return matches[0], true
	}
	return "", false
}

// ReviewDecision grades one hero action from a played hand against the
// solved strategy at the matching tree node.
type ReviewDecision struct {
	Street              string                 `json:"street"`
	HeroAction          string                 `json:"hero_action"`
	MatchedSolverAction string                 `json:"matched_solver_action,omitempty"`
	GtoActions          []ActionOption         `json:"gto_actions"`
	HeroGtoFreq         float64                `json:"hero_gto_freq"`
	Grade               strategy.Grade         `json:"grade"`
	RangeStrategy       map[string][]float64   `json:"range_strategy,omitempty"`
	ActionEntries       []strategy.ActionEntry `json:"action_entries"`
}

// Review replays a parsed hand through a solved tree and grades every
// hero decision. board is the concatenated community cards, e.g.
// "AcKhQd2s". The second return is the combo key the solver actually
// stores for the hero's hand, which may differ by suit permutation.
func Review(tree *strategy.Node, heroCombo, board string, actions map[string][]parser.Action) ([]ReviewDecision, string) {
	path := strategy.NewPath(tree)
	heroCards := map[string]bool{heroCombo[:2]: true, heroCombo[2:]: true}

	streetCard := func(street string) string {
		switch {
		case street == "turn" && len(board) >= 8:
			return board[6:8]
		case street == "river" && len(board) >= 10:
			return board[8:10]
		}
		return ""
	}

	var decisions []ReviewDecision
streets:
	for _, street := range []string{"flop", "turn", "river"} {
		streetActions := actions[street]
		if len(streetActions) == 0 {
			break
		}
		n := path.Current()
		if n == nil {
			break
		}

		if card := streetCard(street); card != "" && n.Type == strategy.ChanceNode {
			deals := n.DealKeys()
			if len(deals) == 0 {
				// tree dumped two streets deep; river data absent
				if street == "river" {
					continue
				}
				break
			}
			pushed := ""
			if n.Child(card) != nil && !heroCards[card] {
				pushed = card
			} else {
				for _, d := range deals {
					if !heroCards[d] {
						pushed = d
						break
					}
				}
			}
			if pushed == "" || path.Push(pushed) != nil {
				break
			}
			n = path.Current()
		}

		for _, act := range streetActions {
			if n == nil || n.Type != strategy.ActionNode {
				break
			}
			children := n.ActionKeys()
			solverAction, matched := MapVerbToSolver(act.Verb, children)

			if act.IsHero {
				opts, err := AvailableActions(n, heroCombo)
				if err != nil {
					break streets
				}
				entries, _ := strategy.ActionEntries(n)
				freq := 0.0
				if matched {
					for _, o := range opts {
						if o.Name == solverAction {
							freq = o.GtoFreq
							break
						}
					}
				}
				decisions = append(decisions, ReviewDecision{
					Street:              street,
					HeroAction:          act.Verb,
					MatchedSolverAction: solverAction,
					GtoActions:          opts,
					HeroGtoFreq:         round4(freq),
					Grade:               strategy.GradeDecision(freq),
					RangeStrategy:       n.Strategy,
					ActionEntries:       entries,
				})
			}

			if !matched || path.Push(solverAction) != nil {
				break
			}
			n = path.Current()
		}
	}

	heroIso := ""
	for _, d := range decisions {
		if len(d.RangeStrategy) > 0 {
			if iso, ok := strategy.FindIsoCombo(d.RangeStrategy, heroCombo); ok {
				heroIso = iso
				break
			}
		}
	}
	return decisions, heroIso
}
