package trainer

import (
	"math/rand"
	"testing"

	"gto-rangelab/server/parser"
	"gto-rangelab/server/spots"
	"gto-rangelab/server/strategy"
)

func mustTree(t *testing.T, src string) *strategy.Node {
	t.Helper()
	n, err := strategy.ParseTree([]byte(src))
	if err != nil {
		t.Fatalf("parse tree: %v", err)
	}
	return n
}

// Both players check the flop and the hand ends. Whichever seat the hero
// draws, the first decision node offers CHECK at full frequency.
const checkDownTree = `{
	"node_type": "action_node",
	"player": 0,
	"childrens": {
		"CHECK": {
			"node_type": "action_node",
			"player": 1,
			"childrens": {
				"CHECK": {"node_type": "action_node", "player": 0, "childrens": {}}
			},
			"strategy": {"strategy": {"AcAd": [1.0], "AhAs": [1.0]}}
		}
	},
	"strategy": {"strategy": {"AcAd": [1.0], "AhAs": [1.0]}}
}`

func TestComputeStreet(t *testing.T) {
	cases := []struct {
		path []string
		want string
	}{
		{nil, "flop"},
		{[]string{"CHECK", "BET 35", "CALL"}, "flop"},
		{[]string{"CHECK", "CHECK", "Kh"}, "turn"},
		{[]string{"CHECK", "2d", "BET 50", "CALL", "As"}, "river"},
		{[]string{"7c", "9s", "Td"}, "river"},
	}
	for _, c := range cases {
		if got := ComputeStreet(c.path); got != c.want {
			t.Errorf("ComputeStreet(%v) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestScenarioContext(t *testing.T) {
	if got := ScenarioContext("BTN_vs_BB", "ip"); got == "" || got == "BTN_vs_BB (ip)" {
		t.Errorf("expected narration for BTN_vs_BB ip, got %q", got)
	}
	if got := ScenarioContext("UTG_vs_MP", "ip"); got != "UTG_vs_MP (ip)" {
		t.Errorf("unknown matchup fallback = %q", got)
	}
}

func TestIsVillainNode(t *testing.T) {
	tree := mustTree(t, checkDownTree)
	if IsVillainNode(tree, "oop", "AcAd") {
		t.Error("player 0 node should be the oop hero's")
	}
	if !IsVillainNode(tree, "ip", "AcAd") {
		t.Error("player 0 node should be villain for an ip hero")
	}

	// no player field: fall back to a strategy lookup for the hero combo
	noPlayer := mustTree(t, `{
		"node_type": "action_node",
		"childrens": {"CHECK": {"node_type": "action_node", "childrens": {}}},
		"strategy": {"strategy": {"AcAd": [1.0]}}
	}`)
	if IsVillainNode(noPlayer, "ip", "AcAd") {
		t.Error("combo present in strategy means hero acts")
	}
	if !IsVillainNode(noPlayer, "ip", "KcKd") {
		t.Error("combo absent from strategy means villain acts")
	}

	empty := mustTree(t, `{
		"node_type": "action_node",
		"childrens": {"CHECK": {"node_type": "action_node", "childrens": {}}}
	}`)
	if IsVillainNode(empty, "ip", "KcKd") {
		t.Error("node without a strategy defaults to the hero")
	}
}

func TestSampleVillainActionPureStrategy(t *testing.T) {
	tree := mustTree(t, `{
		"node_type": "action_node",
		"player": 0,
		"childrens": {
			"CHECK": {"node_type": "action_node", "childrens": {}},
			"BET 35": {"node_type": "action_node", "childrens": {}}
		},
		"strategy": {"strategy": {"AcAd": [0.0, 1.0], "KcKd": [0.0, 1.0]}}
	}`)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		if got := SampleVillainAction(tree, rng); got != "BET 35" {
			t.Fatalf("sample %d: got %q, want BET 35", i, got)
		}
	}
}

func TestAdvanceToHeroThroughVillainAndChance(t *testing.T) {
	tree := mustTree(t, `{
		"node_type": "action_node",
		"player": 0,
		"childrens": {
			"CHECK": {
				"node_type": "chance_node",
				"deal_cards": {
					"2c": {"node_type": "action_node", "player": 1, "childrens": {"CHECK": {"node_type": "action_node", "childrens": {}}}},
					"Kh": {"node_type": "action_node", "player": 1, "childrens": {"CHECK": {"node_type": "action_node", "childrens": {}}}}
				}
			}
		},
		"strategy": {"strategy": {"AcAd": [1.0]}}
	}`)
	path := strategy.NewPath(tree)
	blocked := map[string]bool{"2c": true}
	history, terminal := AdvanceToHero(path, "ip", "QcQd", blocked, rand.New(rand.NewSource(1)))
	if terminal {
		t.Fatal("should stop at the ip hero node after the deal")
	}
	if len(history) != 2 || history[0] != "V:CHECK" || history[1] != "[Kh]" {
		t.Fatalf("history = %v", history)
	}
	if got := ComputeStreet(path.Labels()); got != "turn" {
		t.Errorf("street after deal = %q", got)
	}
}

func TestAvailableActionsImplicitFold(t *testing.T) {
	tree := mustTree(t, `{
		"node_type": "action_node",
		"player": 1,
		"childrens": {
			"CALL": {"node_type": "action_node", "childrens": {}},
			"RAISE 100": {"node_type": "action_node", "childrens": {}}
		},
		"strategy": {"strategy": {"AcKc": [0.1, 0.6, 0.3]}}
	}`)
	opts, err := AvailableActions(tree, "AcKc")
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 3 {
		t.Fatalf("got %d options, want 3", len(opts))
	}
	if opts[0].Name != "FOLD" || opts[0].GtoFreq != 0.1 {
		t.Errorf("opts[0] = %+v", opts[0])
	}
	if opts[1].Name != "CALL" || opts[1].GtoFreq != 0.6 {
		t.Errorf("opts[1] = %+v", opts[1])
	}
	if opts[2].Name != "RAISE 100" || opts[2].GtoFreq != 0.3 {
		t.Errorf("opts[2] = %+v", opts[2])
	}
}

func TestManagerSessionLifecycle(t *testing.T) {
	tree := mustTree(t, checkDownTree)
	spot := spots.Spot{
		Key:             "test_spot",
		PositionMatchup: "BTN_vs_BB",
		Board:           "2c,5h,9d",
		RangeIP:         "AA",
		RangeOOP:        "AA",
		Pot:             70,
		EffectiveStack:  930,
	}
	m := NewManager()

	st, err := m.Start("hero", spot, tree)
	if err != nil {
		t.Fatal(err)
	}
	if st.IsTerminal {
		t.Fatal("session should pause at a hero decision")
	}
	if len(st.AvailableActions) != 1 || st.AvailableActions[0].Name != "CHECK" {
		t.Fatalf("available = %+v", st.AvailableActions)
	}
	if st.HeroCombo[0] != 'A' || st.HeroCombo[2] != 'A' {
		t.Errorf("hero combo %q not from the AA range", st.HeroCombo)
	}
	if st.Street != "flop" {
		t.Errorf("street = %q", st.Street)
	}

	st, err = m.Act(st.SessionID, "CHECK")
	if err != nil {
		t.Fatal(err)
	}
	if !st.IsTerminal {
		t.Fatal("checking through should end the hand")
	}
	if len(st.Decisions) != 1 {
		t.Fatalf("decisions = %+v", st.Decisions)
	}
	d := st.Decisions[0]
	if d.ChosenAction != "CHECK" || d.GtoFreq != 1.0 || d.Grade != strategy.Best {
		t.Errorf("decision = %+v", d)
	}

	res, err := m.Complete(st.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 1.0 {
		t.Errorf("score = %v", res.Score)
	}
	if _, err := m.Snapshot(st.SessionID); err == nil {
		t.Error("completed session should be gone")
	}
}

func TestActRejectsUnknownActionAndSession(t *testing.T) {
	m := NewManager()
	if _, err := m.Act("nope", "CHECK"); err == nil {
		t.Error("missing session should error")
	}
	tree := mustTree(t, checkDownTree)
	spot := spots.Spot{Key: "s", PositionMatchup: "BTN_vs_BB", Board: "2c,5h,9d", RangeIP: "AA", RangeOOP: "AA", Pot: 70, EffectiveStack: 930}
	st, err := m.Start("hero", spot, tree)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Act(st.SessionID, "BET 9999"); err == nil {
		t.Error("unavailable action should error")
	}
}

func TestResolveMatchup(t *testing.T) {
	cases := []struct {
		pos     string
		matchup string
		role    string
		ok      bool
	}{
		{"BTN", "BTN_vs_BB", "ip", true},
		{"CO", "CO_vs_BB", "ip", true},
		{"HJ", "HJ_vs_BB", "ip", true},
		{"SB", "SB_vs_BB", "oop", true},
		{"BB", "BTN_vs_BB", "oop", true},
		{"EP", "", "", false},
	}
	for _, c := range cases {
		matchup, role, ok := ResolveMatchup(c.pos)
		if ok != c.ok || matchup != c.matchup || role != c.role {
			t.Errorf("ResolveMatchup(%s) = %s,%s,%v want %s,%s,%v",
				c.pos, matchup, role, ok, c.matchup, c.role, c.ok)
		}
	}
}

func TestMapVerbToSolver(t *testing.T) {
	children := []string{"CHECK", "BET 35", "BET 70", "RAISE 100"}
	cases := []struct {
		verb string
		want string
		ok   bool
	}{
		{"checks", "CHECK", true},
		{"bets", "BET 35", true},
		{"raises", "RAISE 100", true},
		{"calls", "", false},
		{"shows", "", false},
	}
	for _, c := range cases {
		got, ok := MapVerbToSolver(c.verb, children)
		if got != c.want || ok != c.ok {
			t.Errorf("MapVerbToSolver(%s) = %q,%v want %q,%v", c.verb, got, ok, c.want, c.ok)
		}
	}
}

func TestReviewGradesHeroBet(t *testing.T) {
	tree := mustTree(t, `{
		"node_type": "action_node",
		"player": 0,
		"childrens": {
			"CHECK": {
				"node_type": "action_node",
				"player": 1,
				"childrens": {
					"CHECK": {"node_type": "action_node", "childrens": {}},
					"BET 35": {"node_type": "action_node", "childrens": {}}
				},
				"strategy": {"strategy": {"AsKs": [0.4, 0.6]}}
			}
		},
		"strategy": {"strategy": {"QcQd": [1.0]}}
	}`)
	actions := map[string][]parser.Action{
		"flop": {
			{Player: "villain", Verb: "checks"},
			{Player: "hero_player", IsHero: true, Verb: "bets"},
		},
	}
	decisions, iso := Review(tree, "AsKs", "2c5h9d", actions)
	if len(decisions) != 1 {
		t.Fatalf("decisions = %+v", decisions)
	}
	d := decisions[0]
	if d.Street != "flop" || d.MatchedSolverAction != "BET 35" {
		t.Errorf("decision = %+v", d)
	}
	if d.HeroGtoFreq != 0.6 || d.Grade != strategy.Correct {
		t.Errorf("freq %v grade %v", d.HeroGtoFreq, d.Grade)
	}
	if iso != "AsKs" {
		t.Errorf("iso combo = %q", iso)
	}
}

func TestReviewFollowsTurnCard(t *testing.T) {
	tree := mustTree(t, `{
		"node_type": "action_node",
		"player": 0,
		"childrens": {
			"CHECK": {
				"node_type": "action_node",
				"player": 1,
				"childrens": {
					"CHECK": {
						"node_type": "chance_node",
						"deal_cards": {
							"Jd": {
								"node_type": "action_node",
								"player": 0,
								"childrens": {
									"CHECK": {"node_type": "action_node", "childrens": {}},
									"BET 50": {"node_type": "action_node", "childrens": {}}
								},
								"strategy": {"strategy": {"AsKs": [0.9, 0.1]}}
							}
						}
					}
				},
				"strategy": {"strategy": {"QcQd": [1.0]}}
			}
		},
		"strategy": {"strategy": {"AsKs": [1.0]}}
	}`)
	actions := map[string][]parser.Action{
		"flop": {
			{IsHero: true, Verb: "checks"},
			{Player: "villain", Verb: "checks"},
		},
		"turn": {
			{IsHero: true, Verb: "bets"},
		},
	}
	decisions, _ := Review(tree, "AsKs", "2c5h9dJd", actions)
	if len(decisions) != 2 {
		t.Fatalf("want 2 decisions, got %+v", decisions)
	}
	turn := decisions[1]
	if turn.Street != "turn" || turn.MatchedSolverAction != "BET 50" {
		t.Errorf("turn decision = %+v", turn)
	}
	if turn.HeroGtoFreq != 0.1 || turn.Grade != strategy.Wrong {
		t.Errorf("turn freq %v grade %v", turn.HeroGtoFreq, turn.Grade)
	}
}
