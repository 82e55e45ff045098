package engine

// RangeMatrix is the canonical 13x13 hand grid. Row and column indices are
// rank indices (0 = ace). The diagonal holds pocket pairs, the upper
// triangle (row < col) suited hands, the lower triangle offsuit hands.
type RangeMatrix [13][13]float64

// ComboToCell maps a 4 character combo string like "AhKs" to its cell.
// ok is false for anything that is not two well-ranked cards.
func ComboToCell(combo string) (row, col int, ok bool) {
	if len(combo) != 4 {
		return 0, 0, false
	}
	r1 := RankIndex(combo[0])
	r2 := RankIndex(combo[2])
	if r1 < 0 || r2 < 0 {
		return 0, 0, false
	}
	if r1 == r2 {
		return r1, r1, true
	}
	hi, lo := r1, r2
	if hi > lo {
		hi, lo = lo, hi
	}
	if combo[1] == combo[3] {
		return hi, lo, true // suited
	}
	return lo, hi, true // offsuit
}

// CellName renders a cell for display: "AA", "AKs", "AKo". The higher rank
// is always written first.
func CellName(row, col int) string {
	if row == col {
		return string([]byte{RankChars[row], RankChars[col]})
	}
	if row < col {
		return string([]byte{RankChars[row], RankChars[col], 's'})
	}
	return string([]byte{RankChars[col], RankChars[row], 'o'})
}

// HoleCardsToCellKey collapses concrete hole cards ("AhKs") to the cell key
// used by range storage ("AKs").
func HoleCardsToCellKey(combo string) (string, bool) {
	row, col, ok := ComboToCell(combo)
	if !ok {
		return "", false
	}
	return CellName(row, col), true
}
