package engine

import "testing"

func nonZeroCells(m RangeMatrix) map[string]float64 {
	out := map[string]float64{}
	for r := 0; r < 13; r++ {
		for c := 0; c < 13; c++ {
			if m[r][c] != 0 {
				out[CellName(r, c)] = m[r][c]
			}
		}
	}
	return out
}

func TestParseRangePairs(t *testing.T) {
	m := ParseRange("AA,KK,QQ")
	got := nonZeroCells(m)
	want := map[string]float64{"AA": 1, "KK": 1, "QQ": 1}
	if len(got) != len(want) {
		t.Fatalf("cells = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("cell %s = %v, want %v", k, got[k], v)
		}
	}
	if m[0][0] != 1 || m[1][1] != 1 || m[2][2] != 1 {
		t.Errorf("diagonal cells not set: %v %v %v", m[0][0], m[1][1], m[2][2])
	}
}

func TestParseRangeSuitedFrequency(t *testing.T) {
	m := ParseRange("AKs:0.5")
	if m[0][1] != 0.5 {
		t.Errorf("suited cell = %v, want 0.5", m[0][1])
	}
	if m[1][0] != 0 {
		t.Errorf("offsuit cell = %v, want 0", m[1][0])
	}
}

func TestParseRangeBareTwoRank(t *testing.T) {
	m := ParseRange("AK")
	if m[0][1] != 1 || m[1][0] != 1 {
		t.Errorf("AK cells = %v,%v, want 1,1", m[0][1], m[1][0])
	}
}

func TestParseRangePairRange(t *testing.T) {
	m := ParseRange("AA-99")
	got := nonZeroCells(m)
	if len(got) != 6 {
		t.Fatalf("cells = %v, want 6 pairs", got)
	}
	for r := 0; r <= 5; r++ {
		if m[r][r] != 1 {
			t.Errorf("pair cell %s = %v, want 1", CellName(r, r), m[r][r])
		}
	}
	// Reversed endpoints expand the same interval.
	if rev := nonZeroCells(ParseRange("99-AA")); len(rev) != 6 {
		t.Errorf("reversed range cells = %v, want 6", rev)
	}
}

func TestParseRangeSuitedConnectorRange(t *testing.T) {
	m := ParseRange("87s-54s")
	got := nonZeroCells(m)
	want := []string{"87s", "76s", "65s", "54s"}
	if len(got) != len(want) {
		t.Fatalf("cells = %v, want %v", got, want)
	}
	for _, name := range want {
		if got[name] != 1 {
			t.Errorf("cell %s = %v, want 1", name, got[name])
		}
	}
}

func TestParseRangeLastWriteWins(t *testing.T) {
	m := ParseRange("AA:0.3,AA:0.8")
	if m[0][0] != 0.8 {
		t.Errorf("AA = %v, want 0.8 (overwrite, not add)", m[0][0])
	}
}

func TestParseRangeDropsMalformedTokens(t *testing.T) {
	m := ParseRange("AA, ,XYZ,K,AKx,QQ:banana,KK")
	got := nonZeroCells(m)
	if len(got) != 2 || got["AA"] != 1 || got["KK"] != 1 {
		t.Errorf("cells = %v, want only AA and KK", got)
	}
}

func TestParseRangeNoClamping(t *testing.T) {
	m := ParseRange("AA:1.50")
	if m[0][0] != 1.5 {
		t.Errorf("AA = %v, want 1.5 passed through", m[0][0])
	}
}

func TestSerializeRange(t *testing.T) {
	var m RangeMatrix
	m[0][0] = 1
	m[0][1] = 0.75
	m[1][0] = 0.5
	got := SerializeRange(m)
	want := "AA,AKs:0.75,AKo:0.50"
	if got != want {
		t.Errorf("SerializeRange = %q, want %q", got, want)
	}
}

func TestRangeRoundTrip(t *testing.T) {
	inputs := []string{
		"AA,KK,QQ,JJ,TT,99,AKs,AQs:0.75,AKo:0.25,T9s,54s:0.10",
		"AA-99,87s-54s,AK",
		"",
		"22:0.05",
	}
	for _, in := range inputs {
		m := ParseRange(in)
		again := ParseRange(SerializeRange(m))
		if again != m {
			t.Errorf("round trip mismatch for %q:\n first = %v\n again = %v", in, nonZeroCells(m), nonZeroCells(again))
		}
	}
}
