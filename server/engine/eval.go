package engine

import (
	poker "github.com/paulhankin/poker"
)

// Convert our engine.Card -> library card.
func toPH(c Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	case 's':
		s = poker.Spade
	default:
		s = poker.Club
	}
	// Our ranks are chars with ace high. Library: 1..13 (Ace=1).
	var r poker.Rank
	switch c.Rank {
	case 'A':
		r = poker.Rank(1)
	case 'K':
		r = poker.Rank(13)
	case 'Q':
		r = poker.Rank(12)
	case 'J':
		r = poker.Rank(11)
	case 'T':
		r = poker.Rank(10)
	default:
		r = poker.Rank(c.Rank - '0')
	}
	card, _ := poker.MakeCard(s, r)
	return card
}

// HandClass describes the made hand for hole cards plus a board, e.g.
// "two pair". Empty string when the combo or board is unusable.
func HandClass(combo string, board []Card) string {
	if len(combo) != 4 {
		return ""
	}
	c1, err1 := ParseCard(combo[:2])
	c2, err2 := ParseCard(combo[2:])
	if err1 != nil || err2 != nil {
		return ""
	}
	cards := make([]poker.Card, 0, 2+len(board))
	cards = append(cards, toPH(c1), toPH(c2))
	for _, b := range board {
		cards = append(cards, toPH(b))
	}
	if len(cards) < 5 {
		return ""
	}
	d, err := poker.Describe(cards)
	if err != nil {
		return ""
	}
	return d
}

// HandScore ranks hole cards plus a 5 card board. Smaller is stronger.
func HandScore(combo string, board []Card) (int, bool) {
	if len(combo) != 4 || len(board) != 5 {
		return 0, false
	}
	c1, err1 := ParseCard(combo[:2])
	c2, err2 := ParseCard(combo[2:])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	var a7 [7]poker.Card
	a7[0], a7[1] = toPH(c1), toPH(c2)
	for i, b := range board {
		a7[2+i] = toPH(b)
	}
	return int(poker.Eval7(&a7)), true
}
