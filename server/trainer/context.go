// Package trainer runs training sessions against solved spots: dealing a
// hero combo, auto-advancing through chance and villain nodes, grading
// hero decisions, and scoring completed sessions.
package trainer

import "regexp"

// Matches a dealt community card label in the node path, e.g. "Kh".
var cardPat = regexp.MustCompile(`^[2-9TJQKA][cdhs]$`)

// Preflop narration per matchup and hero role.
var scenarioContext = map[string]map[string]string{
	"BTN_vs_BB": {
		"ip":  "BTN (you) opens 2.5bb, BB calls. Single-raised pot.",
		"oop": "BTN opens 2.5bb, you call from BB. Single-raised pot.",
	},
	"CO_vs_BB": {
		"ip":  "CO (you) opens 2.5bb, BB calls. Single-raised pot.",
		"oop": "CO opens 2.5bb, you call from BB. Single-raised pot.",
	},
	"SB_vs_BB": {
		"ip":  "SB opens 2.5bb, you call from BB. Single-raised pot.",
		"oop": "SB (you) opens 2.5bb, BB calls. Single-raised pot.",
	},
	"HJ_vs_BB": {
		"ip":  "HJ (you) opens 2.5bb, BB calls. Single-raised pot.",
		"oop": "HJ opens 2.5bb, you call from BB. Single-raised pot.",
	},
	"BTN_vs_SB_3bet": {
		"ip":  "You open 2.5bb from BTN, SB 3-bets to 9bb, you call. 3-bet pot.",
		"oop": "BTN opens 2.5bb, you 3-bet to 9bb from SB, BTN calls. 3-bet pot.",
	},
	"CO_vs_BB_3bet": {
		"ip":  "You open 2.5bb from CO, BB 3-bets to 9bb, you call. 3-bet pot.",
		"oop": "CO opens 2.5bb, you 3-bet to 9bb from BB, CO calls. 3-bet pot.",
	},
}

// ScenarioContext narrates the preflop action leading into a spot.
func ScenarioContext(matchup, heroPosition string) string {
	if m, ok := scenarioContext[matchup]; ok {
		if s, ok := m[heroPosition]; ok {
			return s
		}
	}
	return matchup + " (" + heroPosition + ")"
}

// ComputeStreet counts dealt cards in the path. The spot board is the
// flop; each dealt card in the path advances one street.
func ComputeStreet(nodePath []string) string {
	dealt := 0
	for _, step := range nodePath {
		if cardPat.MatchString(step) {
			dealt++
		}
	}
	switch dealt {
	case 0:
		return "flop"
	case 1:
		return "turn"
	default:
		return "river"
	}
}
