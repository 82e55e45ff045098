package parser

import (
	"strings"
	"testing"
)

const sampleHand = `PokerStars Zoom Hand #245123456789:  Hold'em No Limit (€0.05/€0.10) - 2025/03/14 21:33:02 ET
Table 'Donati' 6-max Seat #3 is the button
Seat 1: villain_a (€10.00 in chips)
Seat 2: villain_b (€12.35 in chips)
Seat 3: hero_player (€10.50 in chips)
Seat 4: villain_c (€9.80 in chips)
Seat 5: villain_d (€10.00 in chips)
Seat 6: villain_e (€21.00 in chips)
villain_c: posts small blind €0.05
villain_d: posts big blind €0.10
*** HOLE CARDS ***
Dealt to hero_player [Ah Kh]
villain_e: folds
villain_a: folds
villain_b: folds
hero_player: raises €0.15 to €0.25
villain_c: folds
villain_d: calls €0.15
*** FLOP *** [2c 5h 9d]
villain_d: checks
hero_player: bets €0.26
villain_d: folds
Uncalled bet (€0.26) returned to hero_player
hero_player collected €0.52 from pot
*** SUMMARY ***
Total pot €0.55 | Rake €0.03
Board [2c 5h 9d]
Seat 3: hero_player (button) collected (€0.52)
Seat 4: villain_d (big blind) folded on the Flop
`

func TestParseHand(t *testing.T) {
	h, ok := ParseHand(sampleHand, "hero_player")
	if !ok {
		t.Fatal("ParseHand rejected the sample")
	}
	if h.HandID != "245123456789" {
		t.Errorf("hand id = %q", h.HandID)
	}
	if h.StakesSB != 5 || h.StakesBB != 10 {
		t.Errorf("stakes = %d/%d cents, want 5/10", h.StakesSB, h.StakesBB)
	}
	if h.TableName != "Donati" {
		t.Errorf("table = %q", h.TableName)
	}
	if h.HeroSeat != 3 || h.HeroPosition != "BTN" {
		t.Errorf("hero seat/position = %d/%q, want 3/BTN", h.HeroSeat, h.HeroPosition)
	}
	if h.HeroHoleCards != "AhKh" {
		t.Errorf("hole cards = %q", h.HeroHoleCards)
	}
	if h.Board != "2c5h9d" {
		t.Errorf("board = %q", h.Board)
	}
	if h.PotTotal != 55 || h.Rake != 3 {
		t.Errorf("pot/rake = %d/%d", h.PotTotal, h.Rake)
	}
	if !h.VPIP || !h.PFR || h.ThreeBet || h.ThreeBetOppo {
		t.Errorf("flags vpip=%v pfr=%v 3bet=%v 3betopp=%v", h.VPIP, h.PFR, h.ThreeBet, h.ThreeBetOppo)
	}
	// Invested: raise to 0.25 + flop bet 0.26. Collected 0.52.
	if h.HeroResult != 52-51 {
		t.Errorf("result = %d cents, want 1", h.HeroResult)
	}
	if !h.HeroWon || h.WentToShowdown {
		t.Errorf("won=%v showdown=%v", h.HeroWon, h.WentToShowdown)
	}
	if len(h.Actions["preflop"]) != 6 {
		t.Errorf("preflop actions = %d, want 6", len(h.Actions["preflop"]))
	}
	if len(h.Actions["flop"]) != 3 {
		t.Errorf("flop actions = %d, want 3", len(h.Actions["flop"]))
	}
}

func TestParseHandSkipsTournaments(t *testing.T) {
	text := "PokerStars Hand #1: Tournament #222, Hold'em No Limit - Level I\n" + sampleHand
	if _, ok := ParseHand(text, "hero_player"); ok {
		t.Error("tournament hand not skipped")
	}
}

func TestParseHandDerivesBlindPositions(t *testing.T) {
	h, ok := ParseHand(sampleHand, "villain_c")
	if !ok {
		t.Fatal("ParseHand rejected")
	}
	if h.HeroPosition != "SB" {
		t.Errorf("villain_c position = %q, want SB", h.HeroPosition)
	}
	// SB folded preflop: result is the posted blind.
	if h.HeroResult != -5 {
		t.Errorf("result = %d, want -5", h.HeroResult)
	}
}

func TestParseFileSplitsHands(t *testing.T) {
	content := sampleHand + "\n\n\n" + strings.Replace(sampleHand, "#245123456789", "#245123456790", 1)
	hands := ParseFile(content, "hero_player")
	if len(hands) != 2 {
		t.Fatalf("hands = %d, want 2", len(hands))
	}
	if hands[1].HandID != "245123456790" {
		t.Errorf("second hand id = %q", hands[1].HandID)
	}
}

func TestDerivePosition(t *testing.T) {
	tests := []struct {
		seat, btn, total int
		want             string
	}{
		{3, 3, 6, "BTN"},
		{4, 3, 6, "SB"},
		{5, 3, 6, "BB"},
		{6, 3, 6, "EP"},
		{1, 3, 6, "HJ"},
		{2, 3, 6, "CO"},
		{1, 2, 2, "BTN"},
	}
	for _, tt := range tests {
		if got := DerivePosition(tt.seat, tt.btn, tt.total); got != tt.want {
			t.Errorf("DerivePosition(%d,%d,%d) = %q, want %q", tt.seat, tt.btn, tt.total, got, tt.want)
		}
	}
}

func TestExtractVillainData(t *testing.T) {
	fact, ok := ExtractVillainData(sampleHand, "villain_d")
	if !ok {
		t.Fatal("villain not found")
	}
	if fact.Position != "BB" {
		t.Errorf("position = %q, want BB", fact.Position)
	}
	if !fact.VPIP || fact.PFR || fact.Is3Bet {
		t.Errorf("fact = %+v, want caller", fact)
	}
	if _, ok := ExtractVillainData(sampleHand, "nobody"); ok {
		t.Error("unknown villain reported found")
	}
}

func TestComputeSummary(t *testing.T) {
	hands := ParseFile(sampleHand, "hero_player")
	if len(hands) != 1 {
		t.Fatalf("hands = %d", len(hands))
	}
	s := ComputeSummary(hands)
	if s.TotalHands != 1 || s.VPIPPct != 100 || s.PFRPct != 100 {
		t.Errorf("summary = %+v", s)
	}
	if s.CbetPct != 100 {
		t.Errorf("cbet = %v, want 100", s.CbetPct)
	}
	if s.WWSFPct != 100 {
		t.Errorf("wwsf = %v, want 100", s.WWSFPct)
	}
	if s.NetResultCents != 1 {
		t.Errorf("net = %d, want 1", s.NetResultCents)
	}
}
