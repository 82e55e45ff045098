package strategy

import (
	"sort"

	"gto-rangelab/server/engine"
)

// CellAggregate summarizes the combos landing on one matrix cell.
type CellAggregate struct {
	Freqs    []float64 `json:"freqs"`    // per-action mean frequency
	Dominant int       `json:"dominant"` // index of the highest mean, lowest index on ties
	Combos   int       `json:"combos"`   // contributing combo count
}

// AggregateCells folds a node's combo strategy into the 13x13 grid. Combos
// whose vector length disagrees with actionCount are skipped, as are combos
// that fail the cell mapping. Cells with no contributing combos stay nil.
func AggregateCells(strat map[string][]float64, actionCount int) [13][13]*CellAggregate {
	var sums [13][13][]float64
	var counts [13][13]int
	for combo, vec := range strat {
		if len(vec) != actionCount {
			continue
		}
		row, col, ok := engine.ComboToCell(combo)
		if !ok {
			continue
		}
		if sums[row][col] == nil {
			sums[row][col] = make([]float64, actionCount)
		}
		for i, f := range vec {
			sums[row][col][i] += f
		}
		counts[row][col]++
	}
	var grid [13][13]*CellAggregate
	for r := 0; r < 13; r++ {
		for c := 0; c < 13; c++ {
			n := counts[r][c]
			if n == 0 {
				continue
			}
			freqs := make([]float64, actionCount)
			dominant := 0
			for i := range freqs {
				freqs[i] = sums[r][c][i] / float64(n)
				if freqs[i] > freqs[dominant] {
					dominant = i
				}
			}
			grid[r][c] = &CellAggregate{Freqs: freqs, Dominant: dominant, Combos: n}
		}
	}
	return grid
}

// ActionFreq is one action's range-wide weighted frequency.
type ActionFreq struct {
	Name  string  `json:"name"`
	Freq  float64 `json:"freq"`
	Index int     `json:"index"`
}

// AggregateActions averages each action's frequency across every valid
// combo of a node. This is the range view the trainer grades against.
func AggregateActions(strat map[string][]float64, entries []ActionEntry) []ActionFreq {
	sums := make([]float64, len(entries))
	count := 0
	for _, vec := range strat {
		if len(vec) != len(entries) {
			continue
		}
		for i := range entries {
			sums[i] += vec[entries[i].Index]
		}
		count++
	}
	out := make([]ActionFreq, len(entries))
	for i, e := range entries {
		f := 0.0
		if count > 0 {
			f = sums[i] / float64(count)
		}
		out[i] = ActionFreq{Name: e.Name, Freq: f, Index: e.Index}
	}
	return out
}

// ComboStrategy is one combo's exact solved vector.
type ComboStrategy struct {
	Combo string    `json:"combo"`
	Freqs []float64 `json:"freqs"`
}

// CombosForCell lists the combos mapping to one cell with their exact
// vectors, sorted by combo for stable output. Absent combos are never
// synthesized.
func CombosForCell(strat map[string][]float64, row, col int) []ComboStrategy {
	var out []ComboStrategy
	for combo, vec := range strat {
		r, c, ok := engine.ComboToCell(combo)
		if !ok || r != row || c != col {
			continue
		}
		out = append(out, ComboStrategy{Combo: combo, Freqs: vec})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Combo < out[j].Combo })
	return out
}
