package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange compiles a comma separated range expression like
// "AA,KK,AQs:0.75,AK,87s-54s" into a matrix. Unrecognized tokens are
// dropped without error. Later tokens overwrite earlier assignments to the
// same cell. Frequencies are taken as written, no clamping.
func ParseRange(text string) RangeMatrix {
	var m RangeMatrix
	for _, raw := range strings.Split(text, ",") {
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
			tok = tok[:i]
		}
		applyToken(&m, tok, freq)
	}
	return m
}

// Token shapes are tried in fixed precedence order; the first match wins.
func applyToken(m *RangeMatrix, tok string, freq float64) {
	switch {
	case len(tok) == 5 && tok[2] == '-': // pair range, "AA-99"
		if tok[0] != tok[1] || tok[3] != tok[4] {
			return
		}
		a, b := RankIndex(tok[0]), RankIndex(tok[3])
		if a < 0 || b < 0 {
			return
		}
		if a > b {
			a, b = b, a
		}
		for r := a; r <= b; r++ {
			m[r][r] = freq
		}
	case len(tok) == 7 && tok[3] == '-' && tok[2] == 's' && tok[6] == 's': // "87s-54s"
		r1, c1, ok1 := suitedCell(tok[0], tok[1])
		r2, _, ok2 := suitedCell(tok[4], tok[5])
		if !ok1 || !ok2 {
			return
		}
		gap := c1 - r1
		step := 1
		if r2 < r1 {
			step = -1
		}
		for r := r1; ; r += step {
			c := r + gap
			if r >= 0 && r < 13 && c > r && c < 13 {
				m[r][c] = freq
			}
			if r == r2 {
				break
			}
		}
	case len(tok) == 3 && tok[2] == 's':
		if r, c, ok := suitedCell(tok[0], tok[1]); ok {
			m[r][c] = freq
		}
	case len(tok) == 3 && tok[2] == 'o':
		if r, c, ok := suitedCell(tok[0], tok[1]); ok {
			m[c][r] = freq
		}
	case len(tok) == 2 && tok[0] == tok[1]:
		if r := RankIndex(tok[0]); r >= 0 {
			m[r][r] = freq
		}
	case len(tok) == 2: // bare two-rank, both suited and offsuit
		if r, c, ok := suitedCell(tok[0], tok[1]); ok {
			m[r][c] = freq
			m[c][r] = freq
		}
	}
}

// suitedCell returns the upper-triangle cell for two distinct rank chars.
func suitedCell(a, b byte) (row, col int, ok bool) {
	ra, rb := RankIndex(a), RankIndex(b)
	if ra < 0 || rb < 0 || ra == rb {
		return 0, 0, false
	}
	if ra > rb {
		ra, rb = rb, ra
	}
	return ra, rb, true
}

// SerializeRange renders a matrix as a flat cell list in row-major order.
// Zero cells are skipped, full-frequency cells are bare names, anything else
// carries a two decimal suffix. ParseRange(SerializeRange(m)) == m for any
// matrix representable at two decimals.
func SerializeRange(m RangeMatrix) string {
	var parts []string
	for r := 0; r < 13; r++ {
		for c := 0; c < 13; c++ {
			f := m[r][c]
			if f == 0 {
				continue
			}
			if f == 1 {
				parts = append(parts, CellName(r, c))
			} else {
				parts = append(parts, fmt.Sprintf("%s:%.2f", CellName(r, c), f))
			}
		}
	}
	return strings.Join(parts, ",")
}
