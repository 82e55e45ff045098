package engine

import (
	"fmt"
	"strings"
)

// RankChars orders the 13 ranks high to low; index 0 is the ace.
const RankChars = "AKQJT98765432"

// SuitChars carries no ordering, only suited/offsuit identity.
const SuitChars = "cdhs"

// RankIndex returns the matrix index of a rank character, or -1.
func RankIndex(r byte) int {
	return strings.IndexByte(RankChars, r)
}

func validSuit(s byte) bool {
	return strings.IndexByte(SuitChars, s) >= 0
}

type Card struct {
	Rank byte // 'A'..'2'
	Suit byte // 'c','d','h','s'
}

func (c Card) String() string {
	return fmt.Sprintf("%c%c", c.Rank, c.Suit)
}

// ParseCard reads a two character card like "Ah".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 || RankIndex(s[0]) < 0 || !validSuit(s[1]) {
		return Card{}, fmt.Errorf("bad card %q", s)
	}
	return Card{Rank: s[0], Suit: s[1]}, nil
}

// ParseBoard reads a comma separated board like "2c,5h,9d".
func ParseBoard(s string) ([]Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Card, 0, len(parts))
	for _, p := range parts {
		c, err := ParseCard(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
