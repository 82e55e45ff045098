package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reHoleMarker = regexp.MustCompile(`\*\*\* HOLE CARDS \*\*\*`)
	reFlopMarker = regexp.MustCompile(`\*\*\* FLOP \*\*\*`)
	reActionLine = regexp.MustCompile(`(?m)^([^\s:]+): (folds|checks|calls|bets|raises|is all-in)`)
)

// VillainFact is one observation of a named opponent in a raw hand.
type VillainFact struct {
	Position string
	Action   string
	Is3Bet   bool
	VPIP     bool
	PFR      bool
}

// ExtractVillainData finds the villain's position and first preflop action
// in a hand's raw text. ok is false when the villain isn't seated.
func ExtractVillainData(rawText, villain string) (VillainFact, bool) {
	text := strings.ReplaceAll(strings.ReplaceAll(rawText, "\r\n", "\n"), "\r", "\n")

	tm := reTable.FindStringSubmatch(text)
	if tm == nil {
		return VillainFact{}, false
	}
	btnSeat, _ := strconv.Atoi(tm[2])

	holeLoc := reHoleMarker.FindStringIndex(text)
	seatSection := text
	if holeLoc != nil {
		seatSection = text[:holeLoc[0]]
	}
	seats := map[int]string{}
	villainSeat := 0
	for _, sm := range reSeat.FindAllStringSubmatch(seatSection, -1) {
		n, _ := strconv.Atoi(sm[1])
		seats[n] = sm[2]
		if sm[2] == villain {
			villainSeat = n
		}
	}
	if villainSeat == 0 {
		return VillainFact{}, false
	}
	pos := DerivePosition(villainSeat, btnSeat, len(seats))

	if holeLoc == nil {
		return VillainFact{}, false
	}
	preflopEnd := len(text)
	if fl := reFlopMarker.FindStringIndex(text); fl != nil {
		preflopEnd = fl[0]
	}
	preflop := text[holeLoc[0]:preflopEnd]

	priorRaise := false
	for _, m := range reActionLine.FindAllStringSubmatch(preflop, -1) {
		player, action := m[1], m[2]
		if player != villain && action == "raises" {
			priorRaise = true
		}
		if player == villain {
			vpip := action == "calls" || action == "bets" || action == "raises" || action == "is all-in"
			return VillainFact{
				Position: pos,
				Action:   action,
				Is3Bet:   action == "raises" && priorRaise,
				VPIP:     vpip,
				PFR:      action == "raises",
			}, true
		}
	}
	// Blind who never acted: counts as a fold.
	return VillainFact{Position: pos, Action: "folds"}, true
}
