package strategy

import (
	"math"
	"testing"
)

func TestFindIsoComboExact(t *testing.T) {
	strat := map[string][]float64{"AhKh": {1, 0}}
	got, ok := FindIsoCombo(strat, "AhKh")
	if !ok || got != "AhKh" {
		t.Errorf("FindIsoCombo = %q,%v, want exact key", got, ok)
	}
}

func TestFindIsoComboSuitRelabeling(t *testing.T) {
	// Solver kept AhKh as canonical; the dealt AsKs is the same class.
	strat := map[string][]float64{"AhKh": {1, 0}}
	got, ok := FindIsoCombo(strat, "AsKs")
	if !ok || got != "AhKh" {
		t.Errorf("FindIsoCombo(AsKs) = %q,%v, want AhKh", got, ok)
	}
}

func TestFindIsoComboReversedOrder(t *testing.T) {
	strat := map[string][]float64{"KhAh": {1, 0}}
	got, ok := FindIsoCombo(strat, "AsKs")
	if !ok || got != "KhAh" {
		t.Errorf("FindIsoCombo(AsKs) = %q,%v, want KhAh", got, ok)
	}
}

func TestFindIsoComboDistinctClass(t *testing.T) {
	// Offsuit is never isomorphic to suited.
	strat := map[string][]float64{"AhKh": {1, 0}}
	if got, ok := FindIsoCombo(strat, "AhKs"); ok {
		t.Errorf("FindIsoCombo(AhKs) = %q, want no match", got)
	}
}

func TestComboActionFreqFallsBackToRangeAverage(t *testing.T) {
	strat := map[string][]float64{
		"AhKh": {0.8, 0.2},
		"QcQd": {0.4, 0.6},
	}
	got := ComboActionFreq(strat, "7c2d", 0, 2)
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("fallback freq = %v, want range average 0.6", got)
	}
}

func TestComboActionFreqUsesIsoKey(t *testing.T) {
	strat := map[string][]float64{
		"AhKh": {0.8, 0.2},
		"QcQd": {0.4, 0.6},
	}
	got := ComboActionFreq(strat, "AdKd", 1, 2)
	if got != 0.2 {
		t.Errorf("iso freq = %v, want 0.2", got)
	}
}
