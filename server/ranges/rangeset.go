package ranges

import (
	"strconv"
	"strings"

	"gto-rangelab/server/engine"
)

// RangeSet parses a notation string into a cell-key frequency map. Unlike
// the matrix form this keeps the original token keys, which is what
// membership checks against stored ranges want.
func RangeSet(rangeStr string) map[string]float64 {
	out := map[string]float64{}
	for _, raw := range strings.Split(rangeStr, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		freq := 1.0
		if i := strings.IndexByte(tok, ':'); i >= 0 {
			f, err := strconv.ParseFloat(tok[i+1:], 64)
			if err != nil {
				continue
			}
			freq = f
			tok = strings.TrimSpace(tok[:i])
		}
		out[tok] = freq
	}
	return out
}

// IsInRange reports whether concrete hole cards ("AhKs") are played with
// any frequency in a range string.
func IsInRange(holeCards, rangeStr string) bool {
	key, ok := engine.HoleCardsToCellKey(holeCards)
	if !ok {
		return false
	}
	return RangeSet(rangeStr)[key] > 0
}

// Observed VPIP percentage thresholds and the hands each tier adds, from
// strongest down. A 22% VPIP villain plays roughly the first six tiers.
var handTiers = []struct {
	threshold float64
	hands     string
}{
	{5, "AA,KK,QQ,AKs,AKo"},
	{8, "JJ,AQs,AQo"},
	{10, "TT,AJs,KQs"},
	{13, "99,ATs,KJs,QJs,AJo"},
	{16, "88,A9s,KTs,QTs,JTs,KQo"},
	{20, "77,A8s,A7s,A6s,A5s,K9s,Q9s,J9s,T9s,ATo"},
	{25, "66,A4s,A3s,A2s,K8s,Q8s,J8s,T8s,98s,KJo"},
	{30, "55,K7s,K6s,Q7s,J7s,97s,87s,76s,AJo"},
	{35, "44,K5s,K4s,Q6s,J6s,86s,75s,65s,QJo"},
	{40, "33,K3s,K2s,Q5s,96s,85s,74s,64s,54s,KTo"},
	{45, "22,Q4s,Q3s,Q2s,95s,84s,73s,63s,53s,43s,QTo"},
	{50, "J5s,J4s,J3s,94s,83s,72s,62s,52s,42s,JTo,KJo:0.5"},
}

// EstimateRangeFromPct maps an observed VPIP percentage to an estimated
// range string by accumulating tiers until the threshold covers it.
func EstimateRangeFromPct(vpipPct float64) string {
	var parts []string
	for _, tier := range handTiers {
		parts = append(parts, strings.Split(tier.hands, ",")...)
		if vpipPct <= tier.threshold {
			break
		}
	}
	return strings.Join(parts, ",")
}
