package strategy

// The solver stores one canonical combo per suit-isomorphism class when
// isomorphism is enabled, so a dealt combo may be absent from the strategy
// map even though its class is solved. The lookup below searches all 24
// suit relabelings, in both card orders.

var suitPerms = permute([]byte("cdhs"))

func permute(s []byte) [][4]byte {
	var out [][4]byte
	var rec func(k int)
	rec = func(k int) {
		if k == len(s) {
			var p [4]byte
			copy(p[:], s)
			out = append(out, p)
			return
		}
		for i := k; i < len(s); i++ {
			s[k], s[i] = s[i], s[k]
			rec(k + 1)
			s[k], s[i] = s[i], s[k]
		}
	}
	rec(0)
	return out
}

func suitSlot(s byte) int {
	switch s {
	case 'c':
		return 0
	case 'd':
		return 1
	case 'h':
		return 2
	default:
		return 3
	}
}

// FindIsoCombo locates the strategy key that is suit-isomorphic to combo.
func FindIsoCombo(strat map[string][]float64, combo string) (string, bool) {
	if len(combo) != 4 {
		return "", false
	}
	if _, ok := strat[combo]; ok {
		return combo, true
	}
	r1, s1, r2, s2 := combo[0], combo[1], combo[2], combo[3]
	for _, perm := range suitPerms {
		a, b := perm[suitSlot(s1)], perm[suitSlot(s2)]
		cand := string([]byte{r1, a, r2, b})
		if _, ok := strat[cand]; ok {
			return cand, true
		}
		cand = string([]byte{r2, b, r1, a})
		if _, ok := strat[cand]; ok {
			return cand, true
		}
	}
	return "", false
}

// ComboActionFreq reads the solved frequency of one action slot for a
// combo: exact or isomorphic key first, then the range average as a
// fallback so an unmatched combo still grades against something sensible.
func ComboActionFreq(strat map[string][]float64, combo string, index, actionCount int) float64 {
	if key, ok := FindIsoCombo(strat, combo); ok {
		vec := strat[key]
		if index < len(vec) {
			return vec[index]
		}
	}
	sum, count := 0.0, 0
	for _, vec := range strat {
		if len(vec) != actionCount || index >= len(vec) {
			continue
		}
		sum += vec[index]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
