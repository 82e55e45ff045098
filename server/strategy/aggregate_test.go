package strategy

import (
	"errors"
	"math"
	"testing"
)

func actionNode(keys []string, strat map[string][]float64) *Node {
	n := &Node{Type: ActionNode, Player: 0, Strategy: strat}
	n.actionKeys = keys
	n.actions = map[string]*Node{}
	for _, k := range keys {
		n.actions[k] = &Node{Type: ActionNode}
	}
	return n
}

func TestActionEntriesImplicitFold(t *testing.T) {
	n := actionNode([]string{"CALL", "RAISE 100"}, map[string][]float64{
		"AhKh": {0.2, 0.5, 0.3},
	})
	entries, err := ActionEntries(n)
	if err != nil {
		t.Fatalf("ActionEntries: %v", err)
	}
	want := []ActionEntry{{"FOLD", 0}, {"CALL", 1}, {"RAISE 100", 2}}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v", entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, entries[i], want[i])
		}
	}
}

func TestActionEntriesOneToOne(t *testing.T) {
	n := actionNode([]string{"CHECK", "BET 35.0"}, map[string][]float64{
		"AhKh": {0.7, 0.3},
	})
	entries, err := ActionEntries(n)
	if err != nil {
		t.Fatalf("ActionEntries: %v", err)
	}
	if len(entries) != 2 || entries[0] != (ActionEntry{"CHECK", 0}) || entries[1] != (ActionEntry{"BET 35.0", 1}) {
		t.Errorf("entries = %v", entries)
	}
}

func TestActionEntriesInconsistentNode(t *testing.T) {
	n := actionNode([]string{"CHECK", "BET 35.0"}, map[string][]float64{
		"AhKh": {0.2, 0.3, 0.4, 0.1},
	})
	_, err := ActionEntries(n)
	if !errors.Is(err, ErrInconsistentNode) {
		t.Fatalf("err = %v, want ErrInconsistentNode", err)
	}
}

func TestActionEntriesEmptyStrategy(t *testing.T) {
	n := actionNode([]string{"CHECK", "BET 35.0"}, nil)
	entries, err := ActionEntries(n)
	if err != nil {
		t.Fatalf("ActionEntries: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "CHECK" {
		t.Errorf("entries = %v", entries)
	}
}

func TestAggregateActionsUniform(t *testing.T) {
	strat := map[string][]float64{}
	for _, combo := range []string{"AhKh", "AsKs", "QcQd", "7h6h", "9c8d"} {
		strat[combo] = []float64{0.7, 0.3}
	}
	entries := []ActionEntry{{"BET", 0}, {"CHECK", 1}}
	got := AggregateActions(strat, entries)
	if len(got) != 2 {
		t.Fatalf("actions = %v", got)
	}
	if math.Abs(got[0].Freq-0.7) > 1e-9 || got[0].Name != "BET" {
		t.Errorf("BET = %+v, want 0.7", got[0])
	}
	if math.Abs(got[1].Freq-0.3) > 1e-9 {
		t.Errorf("CHECK = %+v, want 0.3", got[1])
	}
}

func TestAggregateCellsDominant(t *testing.T) {
	strat := map[string][]float64{
		"AhKh": {0.7, 0.3},
		"AsKs": {0.7, 0.3},
		"QcQd": {0.7, 0.3},
	}
	grid := AggregateCells(strat, 2)
	aks := grid[0][1]
	if aks == nil || aks.Combos != 2 {
		t.Fatalf("AKs cell = %+v, want 2 combos", aks)
	}
	if aks.Dominant != 0 {
		t.Errorf("AKs dominant = %d, want 0", aks.Dominant)
	}
	if math.Abs(aks.Freqs[0]-0.7) > 1e-9 {
		t.Errorf("AKs freqs = %v", aks.Freqs)
	}
	if grid[1][0] != nil {
		t.Errorf("AKo cell populated with no combos: %+v", grid[1][0])
	}
	if grid[2][2] == nil || grid[2][2].Combos != 1 {
		t.Errorf("QQ cell = %+v", grid[2][2])
	}
}

func TestAggregateCellsTieBreaksLowestIndex(t *testing.T) {
	strat := map[string][]float64{"AhKh": {0.5, 0.5}}
	grid := AggregateCells(strat, 2)
	if grid[0][1].Dominant != 0 {
		t.Errorf("dominant = %d, want lowest index on tie", grid[0][1].Dominant)
	}
}

func TestAggregateSkipsBadVectors(t *testing.T) {
	strat := map[string][]float64{
		"AhKh": {0.7, 0.3},
		"QcQd": {0.2, 0.3, 0.5}, // wrong arity, skipped
		"zzzz": {0.7, 0.3},      // unmappable combo, skipped
	}
	grid := AggregateCells(strat, 2)
	if grid[2][2] != nil {
		t.Errorf("bad-arity combo aggregated: %+v", grid[2][2])
	}
	entries := []ActionEntry{{"BET", 0}, {"CHECK", 1}}
	got := AggregateActions(strat, entries)
	if math.Abs(got[0].Freq-0.7) > 1e-9 {
		t.Errorf("BET freq = %v, want 0.7 from the single valid combo", got[0].Freq)
	}
}

func TestCombosForCell(t *testing.T) {
	strat := map[string][]float64{
		"AhKh": {0.7, 0.3},
		"AsKs": {0.6, 0.4},
		"QcQd": {0.9, 0.1},
	}
	got := CombosForCell(strat, 0, 1)
	if len(got) != 2 {
		t.Fatalf("combos = %v", got)
	}
	if got[0].Combo != "AhKh" || got[1].Combo != "AsKs" {
		t.Errorf("combos = %v, want sorted AhKh, AsKs", got)
	}
	// A combo absent from the map must not be synthesized.
	for _, cs := range CombosForCell(strat, 0, 0) {
		t.Errorf("unexpected combo %v for empty cell", cs)
	}
}
