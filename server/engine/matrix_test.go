package engine

import "testing"

func TestComboToCell(t *testing.T) {
	tests := []struct {
		combo    string
		row, col int
	}{
		{"AhAs", 0, 0},
		{"2c2d", 12, 12},
		{"AhKh", 0, 1},  // suited, upper triangle
		{"AhKs", 1, 0},  // offsuit, lower triangle
		{"KsAh", 1, 0},  // card order must not matter
		{"7d2d", 7, 12}, // suited regardless of input order
		{"2d7d", 7, 12},
		{"Ts9c", 5, 4},
	}
	for _, tt := range tests {
		row, col, ok := ComboToCell(tt.combo)
		if !ok {
			t.Fatalf("ComboToCell(%q) not ok", tt.combo)
		}
		if row != tt.row || col != tt.col {
			t.Errorf("ComboToCell(%q) = (%d,%d), want (%d,%d)", tt.combo, row, col, tt.row, tt.col)
		}
	}
}

func TestComboToCellRejectsMalformed(t *testing.T) {
	for _, combo := range []string{"", "Ah", "AhK", "XhKs", "AhXs", "AhKsQd"} {
		if _, _, ok := ComboToCell(combo); ok {
			t.Errorf("ComboToCell(%q) ok, want rejection", combo)
		}
	}
}

func TestCellName(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "AA"},
		{12, 12, "22"},
		{0, 1, "AKs"},
		{1, 0, "AKo"},
		{4, 5, "T9s"},
		{5, 4, "T9o"},
	}
	for _, tt := range tests {
		if got := CellName(tt.row, tt.col); got != tt.want {
			t.Errorf("CellName(%d,%d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestBijection(t *testing.T) {
	// Every concrete combo must land on the cell whose name matches its
	// rank pair and suitedness.
	for i := 0; i < 52; i++ {
		for j := 0; j < 52; j++ {
			if i == j {
				continue
			}
			c1 := Card{Rank: RankChars[i/4], Suit: SuitChars[i%4]}
			c2 := Card{Rank: RankChars[j/4], Suit: SuitChars[j%4]}
			combo := c1.String() + c2.String()
			row, col, ok := ComboToCell(combo)
			if !ok {
				t.Fatalf("ComboToCell(%q) not ok", combo)
			}
			name := CellName(row, col)
			switch {
			case c1.Rank == c2.Rank:
				if row != col || name[0] != c1.Rank {
					t.Fatalf("%q -> %q, want pair cell", combo, name)
				}
			case c1.Suit == c2.Suit:
				if row >= col || name[2] != 's' {
					t.Fatalf("%q -> %q, want suited cell", combo, name)
				}
			default:
				if row <= col || name[2] != 'o' {
					t.Fatalf("%q -> %q, want offsuit cell", combo, name)
				}
			}
		}
	}
}

func TestHoleCardsToCellKey(t *testing.T) {
	tests := []struct {
		combo string
		want  string
	}{
		{"AhKs", "AKo"},
		{"KsAh", "AKo"},
		{"AhKh", "AKs"},
		{"9c9d", "99"},
	}
	for _, tt := range tests {
		got, ok := HoleCardsToCellKey(tt.combo)
		if !ok || got != tt.want {
			t.Errorf("HoleCardsToCellKey(%q) = %q,%v, want %q", tt.combo, got, ok, tt.want)
		}
	}
}
