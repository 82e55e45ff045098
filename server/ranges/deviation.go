package ranges

import "strings"

// HandFacts is the slice of a stored hand that deviation analysis needs.
type HandFacts struct {
	Position     string
	HoleCards    string
	VPIP         bool
	PFR          bool
	ThreeBet     bool
	ThreeBetOppo bool
}

// DeviationRow compares actual play against the defined range for one
// scenario.
type DeviationRow struct {
	ScenarioKey   string  `json:"scenario_key"`
	ScenarioLabel string  `json:"scenario_label"`
	HandsPlayed   int     `json:"hands_played"`
	InRangeCount  int     `json:"in_range_count"`
	AdherencePct  float64 `json:"adherence_pct"`
}

// ComputeDeviation buckets hands into open, 3-bet, and flat-call scenarios
// and scores each against the player's range (saved or default). The raiser
// position is not stored per hand, so 3-bet and call hands count against
// the first matching scenario only.
func ComputeDeviation(hands []HandFacts, savedRanges map[string]string) []DeviationRow {
	getRange := func(key string) string {
		if r, ok := savedRanges[key]; ok {
			return r
		}
		return Defaults[key]
	}

	type counter struct{ played, inRange int }
	stats := map[string]*counter{}
	bump := func(key, cards string) {
		c := stats[key]
		if c == nil {
			c = &counter{}
			stats[key] = c
		}
		c.played++
		if IsInRange(cards, getRange(key)) {
			c.inRange++
		}
	}

	for _, h := range hands {
		if h.Position == "" || h.HoleCards == "" {
			continue
		}
		if h.PFR && !h.ThreeBet {
			key := "open_" + h.Position
			if _, ok := ScenarioByKey(key); ok {
				bump(key, h.HoleCards)
			}
		}
		if h.ThreeBet {
			for _, s := range Scenarios {
				if strings.HasPrefix(s.Key, "3bet_"+h.Position+"_vs_") {
					bump(s.Key, h.HoleCards)
					break
				}
			}
		}
		if h.VPIP && !h.PFR && !h.ThreeBetOppo {
			for _, s := range Scenarios {
				if strings.HasPrefix(s.Key, "call_"+h.Position+"_vs_") {
					bump(s.Key, h.HoleCards)
					break
				}
			}
		}
	}

	var rows []DeviationRow
	for _, s := range Scenarios {
		c, ok := stats[s.Key]
		if !ok || c.played == 0 {
			continue
		}
		rows = append(rows, DeviationRow{
			ScenarioKey:   s.Key,
			ScenarioLabel: s.Label,
			HandsPlayed:   c.played,
			InRangeCount:  c.inRange,
			AdherencePct:  float64(int(float64(c.inRange)/float64(c.played)*1000+0.5)) / 10,
		})
	}
	return rows
}
