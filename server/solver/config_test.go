package solver

import (
	"strings"
	"testing"
)

func TestRenderConfig(t *testing.T) {
	req := Request{
		Pot:            70,
		EffectiveStack: 930,
		Board:          "Qs,Jh,2h",
		RangeIP:        "AA,KK,AKs",
		RangeOOP:       "QQ-99,AQs:0.75",
		BetSizes: []BetSize{
			{Pos: "ip", Street: "flop", Kind: "bet", Sizes: []float64{50}},
			{Pos: "oop", Street: "flop", Kind: "raise", Sizes: []float64{75}},
		},
		UseIsomorphism: true,
	}
	got := RenderConfig(req, "/tmp/jobs/abc/result.json")
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	want := []string{
		"set_pot 70",
		"set_effective_stack 930",
		"set_board Qs,Jh,2h",
		"set_range_ip AA,KK,AKs",
		"set_range_oop QQ-99,AQs:0.75",
		"set_bet_sizes ip,flop,bet,50",
		"set_bet_sizes oop,flop,raise,75",
		"set_allin_threshold 0.67",
		"build_tree",
		"set_thread_num 4",
		"set_accuracy 0.5",
		"set_max_iteration 200",
		"set_print_interval 10",
		"set_use_isomorphism 1",
		"start_solve",
		"set_dump_rounds 2",
		"dump_result /tmp/jobs/abc/result.json",
	}
	if len(lines) != len(want) {
		t.Fatalf("line count = %d, want %d:\n%s", len(lines), len(want), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderConfigAllinSizes(t *testing.T) {
	req := Request{
		Pot: 70, EffectiveStack: 930, Board: "Qs,Jh,2h",
		RangeIP: "AA", RangeOOP: "KK",
		BetSizes: []BetSize{
			{Pos: "ip", Street: "flop", Kind: "allin"},
			{Pos: "oop", Street: "turn", Kind: "bet"},
			{Pos: "ip", Street: "river", Kind: "bet", Sizes: []float64{100}},
		},
	}
	got := RenderConfig(req, "r.json")
	for _, frag := range []string{
		"set_bet_sizes ip,flop,allin\n",
		"set_bet_sizes oop,turn,bet\n",
		"set_bet_sizes ip,river,bet,100\n",
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("config missing %q:\n%s", frag, got)
		}
	}
	if strings.Contains(got, "allin,") {
		t.Errorf("allin line carries a sizes field:\n%s", got)
	}
}

func TestRenderConfigDefaults(t *testing.T) {
	got := RenderConfig(Request{Pot: 100, EffectiveStack: 900, Board: "2c,5h,9d"}, "r.json")
	for _, frag := range []string{"set_allin_threshold 0.67", "set_thread_num 4", "set_use_isomorphism 0"} {
		if !strings.Contains(got, frag) {
			t.Errorf("config missing %q:\n%s", frag, got)
		}
	}
}

func TestProgressLineFilter(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Iter: 50", true},
		{"exploitability 0.42", true},
		{"time used: 12.5s", true},
		{"SOLVING...", true},
		{"some allocation chatter", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := progressLine(tt.line); got != tt.want {
			t.Errorf("progressLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
