package engine

import "testing"

func TestCellCombosCounts(t *testing.T) {
	if n := len(CellCombos(0, 0)); n != 6 {
		t.Errorf("pair combos = %d, want 6", n)
	}
	if n := len(CellCombos(0, 1)); n != 4 {
		t.Errorf("suited combos = %d, want 4", n)
	}
	if n := len(CellCombos(1, 0)); n != 12 {
		t.Errorf("offsuit combos = %d, want 12", n)
	}
}

func TestCellCombosMapBack(t *testing.T) {
	for r := 0; r < 13; r++ {
		for c := 0; c < 13; c++ {
			for _, combo := range CellCombos(r, c) {
				gr, gc, ok := ComboToCell(combo)
				if !ok || gr != r || gc != c {
					t.Fatalf("combo %q of cell (%d,%d) maps to (%d,%d,%v)", combo, r, c, gr, gc, ok)
				}
			}
		}
	}
}

func TestCombosForRangeDeadCards(t *testing.T) {
	m := ParseRange("AA")
	board, err := ParseBoard("Ah,Kd,2c")
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	combos := CombosForRange(m, board)
	// One ace on the board leaves C(3,2) = 3 pair combos.
	if len(combos) != 3 {
		t.Fatalf("combos = %v, want 3", combos)
	}
	for _, combo := range combos {
		if combo[:2] == "Ah" || combo[2:] == "Ah" {
			t.Errorf("combo %q uses a board card", combo)
		}
	}
}

func TestCombosForRangeWholeRange(t *testing.T) {
	m := ParseRange("AA,AKs,AKo")
	combos := CombosForRange(m, nil)
	if len(combos) != 6+4+12 {
		t.Errorf("combos = %d, want 22", len(combos))
	}
}
