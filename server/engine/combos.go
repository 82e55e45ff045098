package engine

// CellCombos expands a cell to its concrete combos: 6 for a pair, 4 for a
// suited cell, 12 for an offsuit cell. Combos are written higher rank first.
func CellCombos(row, col int) []string {
	if row == col {
		r := RankChars[row]
		out := make([]string, 0, 6)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				out = append(out, string([]byte{r, SuitChars[i], r, SuitChars[j]}))
			}
		}
		return out
	}
	hi, lo := row, col
	if hi > lo {
		hi, lo = lo, hi
	}
	a, b := RankChars[hi], RankChars[lo]
	if row < col { // suited
		out := make([]string, 0, 4)
		for i := 0; i < 4; i++ {
			s := SuitChars[i]
			out = append(out, string([]byte{a, s, b, s}))
		}
		return out
	}
	out := make([]string, 0, 12)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			out = append(out, string([]byte{a, SuitChars[i], b, SuitChars[j]}))
		}
	}
	return out
}

// CombosForRange expands every played cell of a matrix to concrete combos,
// excluding any combo that uses a dead card. Used to deal hero hands.
func CombosForRange(m RangeMatrix, dead []Card) []string {
	blocked := make(map[string]bool, len(dead))
	for _, c := range dead {
		blocked[c.String()] = true
	}
	var out []string
	for r := 0; r < 13; r++ {
		for c := 0; c < 13; c++ {
			if m[r][c] <= 0 {
				continue
			}
			for _, combo := range CellCombos(r, c) {
				if blocked[combo[:2]] || blocked[combo[2:]] {
					continue
				}
				out = append(out, combo)
			}
		}
	}
	return out
}
