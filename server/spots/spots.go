// Package spots holds the built-in trainer spot library. Each spot is a
// postflop situation that gets solved once and cached; ranges are
// representative 6-max preflop solutions.
package spots

import (
	"strings"

	"gto-rangelab/server/solver"
)

// Preflop ranges, abbreviated for tree size.
const (
	btnOpen = "AA,KK,QQ,JJ,TT,99:0.5,88:0.33,AKs,AQs,AJs,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,K9s,QJs,QTs,Q9s,JTs,J9s,T9s,98s,87s,76s,65s,54s," +
		"AKo,AQo,AJo:0.75,ATo:0.5,KQo,KJo:0.5"
	bbDefendVsBTN = "AA,KK,QQ,JJ,TT,99,88,77,66,55,44,33,22," +
		"AKs,AQs,AJs,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,K9s,K8s,QJs,QTs,Q9s,JTs,J9s,J8s,T9s,T8s,98s,97s,87s,86s,76s,75s,65s,64s,54s,53s," +
		"AKo,AQo,AJo,ATo,A9o:0.5,KQo,KJo,KTo:0.5,QJo,QTo:0.5,JTo:0.5"
	coOpen = "AA,KK,QQ,JJ,TT,99,88:0.5,AKs,AQs,AJs,ATs,A9s,A8s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,QJs,QTs,JTs,T9s,98s,87s,76s,65s," +
		"AKo,AQo,AJo,KQo,KJo:0.5"
	bbDefendVsCO = "AA,KK,QQ,JJ,TT,99,88,77,66,55,44,33,22," +
		"AKs,AQs,AJs,ATs,A9s,A8s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,QJs,QTs,JTs,T9s,98s,87s,76s,65s,54s," +
		"AKo,AQo,AJo,ATo:0.5,KQo,KJo,QJo:0.5"
	sbOpen = "AA,KK,QQ,JJ,TT,99,88,77,66:0.5,AKs,AQs,AJs,ATs,A9s,A8s,A7s,A6s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,K9s,QJs,QTs,Q9s,JTs,J9s,T9s,98s,87s,76s,65s,54s," +
		"AKo,AQo,AJo,ATo,KQo,KJo,QJo:0.5"
	bbDefendVsSB = "AA,KK,QQ,JJ,TT,99,88,77,66,55,44,33,22," +
		"AKs,AQs,AJs,ATs,A9s,A8s,A7s,A5s,A4s,A3s,A2s," +
		"KQs,KJs,KTs,K9s,QJs,QTs,JTs,T9s,98s,87s,76s,65s,54s," +
		"AKo,AQo,AJo,ATo,A9o:0.5,KQo,KJo,KTo:0.5,QJo,JTo:0.5"
	hjOpen = "AA,KK,QQ,JJ,TT,99,88:0.5,AKs,AQs,AJs,ATs,A9s,A5s,A4s," +
		"KQs,KJs,KTs,QJs,QTs,JTs,T9s,98s,87s,76s," +
		"AKo,AQo,KQo"
	bbDefendVsHJ = "AA,KK,QQ,JJ,TT,99,88,77,66,55,44,33,22," +
		"AKs,AQs,AJs,ATs,A9s,A5s,A4s,A3s," +
		"KQs,KJs,KTs,QJs,QTs,JTs,T9s,98s,87s,76s,65s," +
		"AKo,AQo,AJo:0.5,KQo,KJo:0.5"
	btnCall3bet  = "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AJs,KQs:0.5,AKo,AQo:0.5"
	sb3bet       = "AA,KK,QQ,JJ,TT:0.5,AKs,AKo,AQs:0.5"
	bb3betVsCO   = "AA,KK,QQ,JJ:0.5,AKs,AKo,AQs:0.5,KQs:0.5"
	coCall3betBB = "AA,KK,QQ,JJ,TT:0.5,AKs,AQs,AKo:0.5"
)

// Pot/stack in solver chips: bb units times ten. Single raised pots carry
// 7bb, 3-bet pots 20bb.
const (
	srpPot        = 70
	srpStack      = 930
	threeBetPot   = 200
	threeBetStack = 800
)

// One size per action keeps the trees small enough to solve in-container.
var stdBetSizes = []solver.BetSize{
	{Pos: "ip", Street: "flop", Kind: "bet", Sizes: []float64{50}},
	{Pos: "ip", Street: "flop", Kind: "raise", Sizes: []float64{100}},
	{Pos: "ip", Street: "turn", Kind: "bet", Sizes: []float64{75}},
	{Pos: "ip", Street: "turn", Kind: "raise", Sizes: []float64{100}},
	{Pos: "ip", Street: "river", Kind: "bet", Sizes: []float64{75}},
	{Pos: "ip", Street: "river", Kind: "raise", Sizes: []float64{100}},
	{Pos: "oop", Street: "flop", Kind: "bet", Sizes: []float64{50}},
	{Pos: "oop", Street: "flop", Kind: "raise", Sizes: []float64{100}},
	{Pos: "oop", Street: "turn", Kind: "bet", Sizes: []float64{75}},
	{Pos: "oop", Street: "turn", Kind: "raise", Sizes: []float64{100}},
	{Pos: "oop", Street: "river", Kind: "bet", Sizes: []float64{75}},
	{Pos: "oop", Street: "river", Kind: "raise", Sizes: []float64{100}},
}

// SolveVersion tags seeded rows. Bump it when solve parameters change so
// every library spot re-solves on the next startup.
const SolveVersion = "v3-2streets"

// Spot is one library entry.
type Spot struct {
	Key             string
	Label           string
	PositionMatchup string
	BoardTexture    string
	Board           string
	RangeIP         string
	RangeOOP        string
	Pot             float64
	EffectiveStack  float64
	BetSizes        []solver.BetSize
}

// SolveRequest builds the solver configuration for this spot.
func (s Spot) SolveRequest() solver.Request {
	return solver.Request{
		Pot:            s.Pot,
		EffectiveStack: s.EffectiveStack,
		Board:          s.Board,
		RangeIP:        s.RangeIP,
		RangeOOP:       s.RangeOOP,
		BetSizes:       s.BetSizes,
		AllinThreshold: 0.67,
		ThreadNum:      2,
		Accuracy:       1.0,
		MaxIteration:   150,
		PrintInterval:  10,
		UseIsomorphism: true,
		DumpRounds:     2, // flop + turn; river trees blow the memory budget
	}
}

func srp(key, label, matchup, texture, board, rangeIP, rangeOOP string) Spot {
	return Spot{
		Key: key, Label: label, PositionMatchup: matchup, BoardTexture: texture,
		Board: board, RangeIP: rangeIP, RangeOOP: rangeOOP,
		Pot: srpPot, EffectiveStack: srpStack, BetSizes: stdBetSizes,
	}
}

func threeBet(key, label, matchup, texture, board, rangeIP, rangeOOP string) Spot {
	return Spot{
		Key: key, Label: label, PositionMatchup: matchup, BoardTexture: texture,
		Board: board, RangeIP: rangeIP, RangeOOP: rangeOOP,
		Pot: threeBetPot, EffectiveStack: threeBetStack, BetSizes: stdBetSizes,
	}
}

// Library lists every built-in spot. SB vs BB spots put the BB in position
// postflop, so the ranges swap sides there.
var Library = []Spot{
	srp("BTN_BB_dry_low", "BTN vs BB - Dry Low (259r)", "BTN_vs_BB", "dry_low", "2c,5h,9d", btnOpen, bbDefendVsBTN),
	srp("BTN_BB_wet_high", "BTN vs BB - Wet High (TJ9hh)", "BTN_vs_BB", "wet_high", "Tc,Jh,9h", btnOpen, bbDefendVsBTN),
	srp("BTN_BB_monotone", "BTN vs BB - Monotone (725c)", "BTN_vs_BB", "monotone", "7c,2c,5c", btnOpen, bbDefendVsBTN),
	srp("BTN_BB_paired_high", "BTN vs BB - Paired High (KK7r)", "BTN_vs_BB", "paired_high", "Kh,Kd,7c", btnOpen, bbDefendVsBTN),
	srp("CO_BB_dry_low", "CO vs BB - Dry Low (37Jr)", "CO_vs_BB", "dry_low", "3d,7h,Jc", coOpen, bbDefendVsCO),
	srp("CO_BB_wet_high", "CO vs BB - Wet High (89Thh)", "CO_vs_BB", "wet_high", "8h,9c,Th", coOpen, bbDefendVsCO),
	srp("CO_BB_monotone", "CO vs BB - Monotone (A63s)", "CO_vs_BB", "monotone", "As,6s,3s", coOpen, bbDefendVsCO),
	srp("CO_BB_paired_mid", "CO vs BB - Paired Mid (88Kr)", "CO_vs_BB", "paired_mid", "8c,8d,Kh", coOpen, bbDefendVsCO),
	srp("SB_BB_dry_low", "SB vs BB - Dry Low (472r)", "SB_vs_BB", "dry_low", "4c,7d,2h", bbDefendVsSB, sbOpen),
	srp("SB_BB_wet_high", "SB vs BB - Wet High (QJ9ss)", "SB_vs_BB", "wet_high", "Qs,Js,9d", bbDefendVsSB, sbOpen),
	srp("SB_BB_monotone", "SB vs BB - Monotone (K62h)", "SB_vs_BB", "monotone", "Kh,6h,2h", bbDefendVsSB, sbOpen),
	srp("SB_BB_paired_low", "SB vs BB - Paired Low (55Ar)", "SB_vs_BB", "paired_low", "5c,5h,Ac", bbDefendVsSB, sbOpen),
	srp("HJ_BB_dry_low", "HJ vs BB - Dry Low (269r)", "HJ_vs_BB", "dry_low", "2s,6c,9h", hjOpen, bbDefendVsHJ),
	srp("HJ_BB_wet_high", "HJ vs BB - Wet High (9TJcd)", "HJ_vs_BB", "wet_high", "9d,Td,Jc", hjOpen, bbDefendVsHJ),
	srp("HJ_BB_paired_high", "HJ vs BB - Paired High (AA5r)", "HJ_vs_BB", "paired_high", "Ah,Ad,5c", hjOpen, bbDefendVsHJ),
	srp("HJ_BB_monotone", "HJ vs BB - Monotone (38Qh)", "HJ_vs_BB", "monotone", "3h,8h,Qh", hjOpen, bbDefendVsHJ),
	threeBet("BTN_SB_3bet_dry", "BTN vs SB 3bet - Dry (27Kr)", "BTN_vs_SB_3bet", "dry", "2d,7c,Kh", btnCall3bet, sb3bet),
	threeBet("BTN_SB_3bet_wet", "BTN vs SB 3bet - Wet (AT8hh)", "BTN_vs_SB_3bet", "wet", "Ah,Th,8c", btnCall3bet, sb3bet),
	threeBet("CO_BB_3bet_dry", "CO vs BB 3bet - Dry (492r)", "CO_vs_BB_3bet", "dry", "4h,9c,2d", coCall3betBB, bb3betVsCO),
	threeBet("CO_BB_3bet_wet", "CO vs BB 3bet - Wet (JT7cc)", "CO_vs_BB_3bet", "wet", "Jc,Tc,7h", coCall3betBB, bb3betVsCO),
}

// ByKey finds a library spot.
func ByKey(key string) (Spot, bool) {
	for _, s := range Library {
		if s.Key == key {
			return s, true
		}
	}
	return Spot{}, false
}

// ByMatchup returns the first solvable spot for a position matchup whose
// flop matches, if any; used by hand review to pick an on-demand config.
func ByMatchup(matchup string) []Spot {
	var out []Spot
	for _, s := range Library {
		if s.PositionMatchup == matchup {
			out = append(out, s)
		}
	}
	return out
}

// Ranges for on-demand hand analysis spots, keyed by matchup. First
// element is the in-position range.
var analysisRanges = map[string][2]string{
	"BTN_vs_BB": {btnOpen, bbDefendVsBTN},
	"CO_vs_BB":  {coOpen, bbDefendVsCO},
	"HJ_vs_BB":  {hjOpen, bbDefendVsHJ},
	"SB_vs_BB":  {bbDefendVsSB, sbOpen}, // BB is IP, SB is OOP
}

// AnalysisSpot builds an on-demand spot for reviewing a real hand on its
// exact flop. flop is three concatenated cards like "AcKhQd". The key is
// stable so every hand on the same board reuses one solve; the hd3
// prefix marks spots dumped three streets deep.
func AnalysisSpot(matchup, flop string, isThreeBet bool) (Spot, bool) {
	ranges, ok := analysisRanges[matchup]
	if !ok || len(flop) != 6 {
		return Spot{}, false
	}
	board := flop[0:2] + "," + flop[2:4] + "," + flop[4:6]
	potType := "srp"
	pot, stack := float64(srpPot), float64(srpStack)
	if isThreeBet {
		potType = "3bet"
		pot, stack = threeBetPot, threeBetStack
	}
	return Spot{
		Key:             "hd3_" + matchup + "_" + potType + "_" + strings.ToLower(flop),
		Label:           matchup + " - " + board + " (" + strings.ToUpper(potType) + ")",
		PositionMatchup: matchup,
		BoardTexture:    "on_demand",
		Board:           board,
		RangeIP:         ranges[0],
		RangeOOP:        ranges[1],
		Pot:             pot,
		EffectiveStack:  stack,
		BetSizes:        stdBetSizes,
	}, true
}

// AnalysisSolveRequest is SolveRequest with all three streets dumped so
// review can follow river decisions, at a lower iteration cap.
func (s Spot) AnalysisSolveRequest() solver.Request {
	r := s.SolveRequest()
	r.MaxIteration = 100
	r.DumpRounds = 3
	return r
}
