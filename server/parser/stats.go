package parser

import (
	"math"
	"sort"
	"time"
)

func round1(f float64) float64 { return math.Round(f*10) / 10 }
func round2(f float64) float64 { return math.Round(f*100) / 100 }

// Summary is the headline stat block over a set of hands.
type Summary struct {
	TotalHands    int     `json:"total_hands"`
	VPIPPct       float64 `json:"vpip_pct"`
	PFRPct        float64 `json:"pfr_pct"`
	ThreeBetPct   float64 `json:"three_bet_pct"`
	WTSDPct       float64 `json:"wtsd_pct"`
	WinRateBB100  float64 `json:"win_rate_bb_100"`
	WSSDPct       float64 `json:"wssd_pct"`
	WWSFPct       float64 `json:"wwsf_pct"`
	AF            float64 `json:"af"`
	CbetPct       float64 `json:"cbet_pct"`
	NetResultCents int    `json:"net_result_cents"`
}

// ComputeSummary aggregates the usual tracker stats. Win rate is measured
// in big blinds per 100 hands against the average stake of the sample.
func ComputeSummary(hands []*Hand) Summary {
	var s Summary
	s.TotalHands = len(hands)
	if s.TotalHands == 0 {
		return s
	}
	var vpip, pfr, threeBet, wtsd, wssdWins, wwsfWins, wwsfTotal int
	var totalResult, totalBB int
	for _, h := range hands {
		if h.VPIP {
			vpip++
		}
		if h.PFR {
			pfr++
		}
		if h.ThreeBet {
			threeBet++
		}
		if h.WentToShowdown {
			wtsd++
			if h.HeroWon {
				wssdWins++
			}
		}
		if h.Board != "" {
			wwsfTotal++
			if h.HeroWon {
				wwsfWins++
			}
		}
		totalResult += h.HeroResult
		totalBB += h.StakesBB
	}
	total := float64(s.TotalHands)
	s.VPIPPct = round1(float64(vpip) / total * 100)
	s.PFRPct = round1(float64(pfr) / total * 100)
	s.ThreeBetPct = round1(float64(threeBet) / total * 100)
	s.WTSDPct = round1(float64(wtsd) / total * 100)
	avgBB := float64(totalBB) / total
	if avgBB > 0 {
		s.WinRateBB100 = round2(float64(totalResult) / (avgBB * total) * 100)
	}
	if wtsd > 0 {
		s.WSSDPct = round1(float64(wssdWins) / float64(wtsd) * 100)
	}
	if wwsfTotal > 0 {
		s.WWSFPct = round1(float64(wwsfWins) / float64(wwsfTotal) * 100)
	}
	s.AF, s.CbetPct = computeAFCbet(hands)
	s.NetResultCents = totalResult
	return s
}

// Aggression factor counts postflop bets and raises per call; c-bet rate
// is the share of flops seen as the preflop raiser that hero bet first in.
func computeAFCbet(hands []*Hand) (af, cbetPct float64) {
	var betsRaises, calls, cbets, pfrSawFlop int
	for _, h := range hands {
		if h.Actions == nil {
			continue
		}
		for _, street := range []string{"flop", "turn", "river"} {
			for _, act := range h.Actions[street] {
				if !act.IsHero {
					continue
				}
				switch act.Verb {
				case "bets", "raises":
					betsRaises++
				case "calls":
					calls++
				}
			}
		}
		if h.PFR && h.Board != "" {
			pfrSawFlop++
			for _, act := range h.Actions["flop"] {
				if act.IsHero {
					if act.Verb == "bets" || act.Verb == "raises" {
						cbets++
					}
					break
				}
			}
		}
	}
	if calls > 0 {
		af = round2(float64(betsRaises) / float64(calls))
	} else {
		af = float64(betsRaises)
	}
	if pfrSawFlop > 0 {
		cbetPct = round1(float64(cbets) / float64(pfrSawFlop) * 100)
	}
	return af, cbetPct
}

// PositionStat is the per-position breakdown.
type PositionStat struct {
	Position     string  `json:"position"`
	Hands        int     `json:"hands"`
	VPIPPct      float64 `json:"vpip_pct"`
	PFRPct       float64 `json:"pfr_pct"`
	WinRateBB100 float64 `json:"win_rate_bb_100"`
}

func ComputeByPosition(hands []*Hand) []PositionStat {
	type agg struct {
		hands, vpip, pfr, result, bb int
	}
	byPos := map[string]*agg{}
	for _, h := range hands {
		if h.HeroPosition == "" {
			continue
		}
		a := byPos[h.HeroPosition]
		if a == nil {
			a = &agg{}
			byPos[h.HeroPosition] = a
		}
		a.hands++
		if h.VPIP {
			a.vpip++
		}
		if h.PFR {
			a.pfr++
		}
		a.result += h.HeroResult
		a.bb += h.StakesBB
	}
	var out []PositionStat
	for pos, a := range byPos {
		total := float64(a.hands)
		winRate := 0.0
		avgBB := float64(a.bb) / total
		if avgBB > 0 {
			winRate = round2(float64(a.result) / (avgBB * total) * 100)
		}
		out = append(out, PositionStat{
			Position:     pos,
			Hands:        a.hands,
			VPIPPct:      round1(float64(a.vpip) / total * 100),
			PFRPct:       round1(float64(a.pfr) / total * 100),
			WinRateBB100: winRate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// TimelinePoint is one hand on the cumulative result graph.
type TimelinePoint struct {
	PlayedAt        time.Time `json:"played_at"`
	HandID          string    `json:"hand_id"`
	ResultCents     int       `json:"result_cents"`
	CumulativeCents int       `json:"cumulative_cents"`
	ResultBB        float64   `json:"result_bb"`
	CumulativeBB    float64   `json:"cumulative_bb"`
}

// ComputeTimeline walks hands in played order accumulating results.
func ComputeTimeline(hands []*Hand) []TimelinePoint {
	ordered := append([]*Hand(nil), hands...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].PlayedAt.Before(ordered[j].PlayedAt) })
	var points []TimelinePoint
	cumulativeCents := 0
	cumulativeBB := 0.0
	for _, h := range ordered {
		resultBB := 0.0
		if h.StakesBB > 0 {
			resultBB = float64(h.HeroResult) / float64(h.StakesBB)
		}
		cumulativeCents += h.HeroResult
		cumulativeBB += resultBB
		points = append(points, TimelinePoint{
			PlayedAt:        h.PlayedAt,
			HandID:          h.HandID,
			ResultCents:     h.HeroResult,
			CumulativeCents: cumulativeCents,
			ResultBB:        round2(resultBB),
			CumulativeBB:    round2(cumulativeBB),
		})
	}
	return points
}
