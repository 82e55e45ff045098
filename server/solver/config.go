// Package solver drives the external CFR solver binary: rendering its text
// command file, running at most one process at a time, and loading dumped
// strategy trees. The solver itself is an opaque oracle.
package solver

import (
	"fmt"
	"strconv"
	"strings"
)

// BetSize configures one betting line for one player and street.
type BetSize struct {
	Pos    string    `json:"pos"`    // "ip" or "oop"
	Street string    `json:"street"` // "flop", "turn", "river"
	Kind   string    `json:"kind"`   // "bet", "raise", "donk", "allin"
	Sizes  []float64 `json:"sizes"`  // percent of pot
}

// Request is one solve configuration.
type Request struct {
	Pot            float64   `json:"pot"`
	EffectiveStack float64   `json:"effective_stack"`
	Board          string    `json:"board"` // comma separated, e.g. "Qs,Jh,2h"
	RangeIP        string    `json:"range_ip"`
	RangeOOP       string    `json:"range_oop"`
	BetSizes       []BetSize `json:"bet_sizes"`
	AllinThreshold float64   `json:"allin_threshold"`
	ThreadNum      int       `json:"thread_num"`
	Accuracy       float64   `json:"accuracy"`
	MaxIteration   int       `json:"max_iteration"`
	PrintInterval  int       `json:"print_interval"`
	UseIsomorphism bool      `json:"use_isomorphism"`
	DumpRounds     int       `json:"dump_rounds"`
}

func (r *Request) fillDefaults() {
	if r.AllinThreshold == 0 {
		r.AllinThreshold = 0.67
	}
	if r.ThreadNum == 0 {
		r.ThreadNum = 4
	}
	if r.Accuracy == 0 {
		r.Accuracy = 0.5
	}
	if r.MaxIteration == 0 {
		r.MaxIteration = 200
	}
	if r.PrintInterval == 0 {
		r.PrintInterval = 10
	}
	if r.DumpRounds == 0 {
		r.DumpRounds = 2
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderConfig produces the command file the solver reads with -i. Line
// order matters: ranges and sizes before build_tree, solve parameters
// before start_solve.
func RenderConfig(req Request, resultPath string) string {
	req.fillDefaults()
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	line("set_pot %s", ftoa(req.Pot))
	line("set_effective_stack %s", ftoa(req.EffectiveStack))
	line("set_board %s", req.Board)
	line("set_range_ip %s", req.RangeIP)
	line("set_range_oop %s", req.RangeOOP)
	for _, bs := range req.BetSizes {
		// allin takes no sizes; the solver rejects a trailing comma
		if bs.Kind == "allin" || len(bs.Sizes) == 0 {
			line("set_bet_sizes %s,%s,%s", bs.Pos, bs.Street, bs.Kind)
			continue
		}
		sizes := make([]string, len(bs.Sizes))
		for i, s := range bs.Sizes {
			sizes[i] = ftoa(s)
		}
		line("set_bet_sizes %s,%s,%s,%s", bs.Pos, bs.Street, bs.Kind, strings.Join(sizes, ","))
	}
	line("set_allin_threshold %s", ftoa(req.AllinThreshold))
	line("build_tree")
	line("set_thread_num %d", req.ThreadNum)
	line("set_accuracy %s", ftoa(req.Accuracy))
	line("set_max_iteration %d", req.MaxIteration)
	line("set_print_interval %d", req.PrintInterval)
	if req.UseIsomorphism {
		line("set_use_isomorphism 1")
	} else {
		line("set_use_isomorphism 0")
	}
	line("start_solve")
	line("set_dump_rounds %d", req.DumpRounds)
	line("dump_result %s", resultPath)
	return b.String()
}
