// Package parser reads PokerStars hand history text: Zoom 6-max NL
// Hold'em cash games in the English format, EUR/USD/GBP. Tournament hands
// are skipped. Amounts are stored in cents.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reHeader = regexp.MustCompile(`PokerStars(?:\s+Zoom)?\s+[Hh]and\s+#(\d+):\s+Hold'em No Limit\s+\([€$£]?([\d.]+)/[€$£]?([\d.]+)\)\s+-\s+(\d{4}/\d{2}/\d{2}\s+\d{2}:\d{2}:\d{2})`)
	reTable  = regexp.MustCompile(`Table '([^']+)' (?:6-max )?Seat #(\d+) is the button`)
	reSeat   = regexp.MustCompile(`Seat (\d+): ([^\s(]+)(?:\s+\([€$£]?([\d.]+) in chips\))?`)
	reHole   = regexp.MustCompile(`Dealt to ([^\s]+) \[([2-9TJQKA][cdhs])\s+([2-9TJQKA][cdhs])\]`)
	reFlop   = regexp.MustCompile(`\*\*\* FLOP \*\*\* \[([2-9TJQKA][cdhs])\s+([2-9TJQKA][cdhs])\s+([2-9TJQKA][cdhs])\]`)
	reTurn   = regexp.MustCompile(`\*\*\* TURN \*\*\* \[[^\]]+\] \[([2-9TJQKA][cdhs])\]`)
	reRiver  = regexp.MustCompile(`\*\*\* RIVER \*\*\* \[[^\]]+\] \[([2-9TJQKA][cdhs])\]`)
	reAction = regexp.MustCompile(`(?m)^([^\s:]+): (folds|checks|calls|bets|raises|is all-in)(?:\s+[€$£]?([\d.]+))?(?:\s+to\s+[€$£]?([\d.]+))?`)
	rePot    = regexp.MustCompile(`Total pot [€$£]?([\d.]+).*?Rake [€$£]?([\d.]+)`)
	reCollect = regexp.MustCompile(`(?m)^([^\s]+) collected [€$£]?([\d.]+) from (?:main )?pot`)
	reTourney = regexp.MustCompile(`(?i)Tournament`)
)

var streetMarkers = []struct {
	name string
	re   *regexp.Regexp
}{
	{"preflop", regexp.MustCompile(`\*\*\* HOLE CARDS \*\*\*`)},
	{"flop", regexp.MustCompile(`\*\*\* FLOP \*\*\*`)},
	{"turn", regexp.MustCompile(`\*\*\* TURN \*\*\*`)},
	{"river", regexp.MustCompile(`\*\*\* RIVER \*\*\*`)},
	{"summary", regexp.MustCompile(`\*\*\* SUMMARY \*\*\*`)},
}

// Seat order relative to the button for 6-max.
var positions6Max = []string{"BTN", "SB", "BB", "EP", "HJ", "CO"}

func toCents(s string) int {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f * 100))
}

// DerivePosition maps a seat number to its position label given the button
// seat and table size.
func DerivePosition(seatNum, btnSeat, totalSeats int) string {
	if totalSeats <= 0 {
		return ""
	}
	rel := ((seatNum-btnSeat)%totalSeats + totalSeats) % totalSeats
	if rel < len(positions6Max) && rel < totalSeats {
		return positions6Max[rel]
	}
	return "S" + strconv.Itoa(seatNum)
}

// Action is one line of play.
type Action struct {
	Player string `json:"player"`
	IsHero bool   `json:"is_hero"`
	Verb   string `json:"action"`
	Amount int    `json:"amount"`
}

// Hand is everything we keep from one parsed hand.
type Hand struct {
	HandID         string
	PlayedAt       time.Time
	StakesSB       int
	StakesBB       int
	TableName      string
	HeroSeat       int
	HeroPosition   string
	HeroHoleCards  string
	Board          string
	PotTotal       int
	Rake           int
	HeroResult     int
	HeroWon        bool
	WentToShowdown bool
	VPIP           bool
	PFR            bool
	ThreeBetOppo   bool
	ThreeBet       bool
	Actions        map[string][]Action
	RawText        string
}

func splitStreets(text string) map[string]string {
	type mark struct {
		name  string
		start int
	}
	var marks []mark
	for _, sm := range streetMarkers {
		if loc := sm.re.FindStringIndex(text); loc != nil {
			marks = append(marks, mark{sm.name, loc[0]})
		}
	}
	// markers appear in document order already, but don't rely on it
	for i := 1; i < len(marks); i++ {
		for j := i; j > 0 && marks[j].start < marks[j-1].start; j-- {
			marks[j], marks[j-1] = marks[j-1], marks[j]
		}
	}
	out := map[string]string{}
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		out[m.name] = text[m.start:end]
	}
	return out
}

func parseActions(section, hero string) []Action {
	var out []Action
	for _, m := range reAction.FindAllStringSubmatch(section, -1) {
		amountStr := m[4]
		if amountStr == "" {
			amountStr = m[3]
		}
		amount := 0
		if amountStr != "" {
			amount = toCents(amountStr)
		}
		out = append(out, Action{
			Player: m[1],
			IsHero: m[1] == hero,
			Verb:   m[2],
			Amount: amount,
		})
	}
	return out
}

// ParseHand parses one hand block. ok is false for tournaments, non-hands,
// and blocks with no seats.
func ParseHand(text, hero string) (*Hand, bool) {
	head := text
	if len(head) > 200 {
		head = head[:200]
	}
	if reTourney.MatchString(head) || hero == "" {
		return nil, false
	}
	hm := reHeader.FindStringSubmatch(text)
	if hm == nil {
		return nil, false
	}
	playedAt, err := time.Parse("2006/01/02 15:04:05", hm[4])
	if err != nil {
		return nil, false
	}
	h := &Hand{
		HandID:   hm[1],
		PlayedAt: playedAt.UTC(),
		StakesSB: toCents(hm[2]),
		StakesBB: toCents(hm[3]),
		RawText:  text,
	}

	btnSeat := 1
	h.TableName = "Unknown"
	if tm := reTable.FindStringSubmatch(text); tm != nil {
		h.TableName = tm[1]
		btnSeat, _ = strconv.Atoi(tm[2])
	}

	seats := map[int]string{}
	for _, sm := range reSeat.FindAllStringSubmatch(text, -1) {
		n, _ := strconv.Atoi(sm[1])
		seats[n] = sm[2]
	}
	if len(seats) == 0 {
		return nil, false
	}
	for n, player := range seats {
		if player == hero {
			h.HeroSeat = n
			break
		}
	}
	if h.HeroSeat != 0 {
		h.HeroPosition = DerivePosition(h.HeroSeat, btnSeat, len(seats))
	}

	if hc := reHole.FindStringSubmatch(text); hc != nil && hc[1] == hero {
		h.HeroHoleCards = hc[2] + hc[3]
	}

	var board []string
	if fm := reFlop.FindStringSubmatch(text); fm != nil {
		board = append(board, fm[1], fm[2], fm[3])
	}
	if tm := reTurn.FindStringSubmatch(text); tm != nil {
		board = append(board, tm[1])
	}
	if rm := reRiver.FindStringSubmatch(text); rm != nil {
		board = append(board, rm[1])
	}
	h.Board = strings.Join(board, "")

	sections := splitStreets(text)
	h.Actions = map[string][]Action{}
	for _, street := range []string{"preflop", "flop", "turn", "river"} {
		if sec, ok := sections[street]; ok {
			h.Actions[street] = parseActions(sec, hero)
		}
	}

	raiseCount := 0
	for _, act := range h.Actions["preflop"] {
		if act.Verb == "raises" || act.Verb == "bets" {
			if raiseCount >= 1 {
				h.ThreeBetOppo = true
			}
			raiseCount++
			if act.IsHero {
				h.VPIP = true
				h.PFR = true
				if raiseCount >= 2 {
					h.ThreeBet = true
				}
			}
		} else if act.Verb == "calls" && act.IsHero {
			h.VPIP = true
		}
	}

	summary, ok := sections["summary"]
	if !ok {
		tail := text
		if len(tail) > 500 {
			tail = tail[len(tail)-500:]
		}
		summary = tail
	}
	if pm := rePot.FindStringSubmatch(summary); pm != nil {
		h.PotTotal = toCents(pm[1])
		h.Rake = toCents(pm[2])
	}
	h.WentToShowdown = strings.Contains(text, "SHOW DOWN")

	invested := 0
	for _, acts := range h.Actions {
		for _, act := range acts {
			if act.IsHero && (act.Verb == "calls" || act.Verb == "bets" || act.Verb == "raises") {
				invested += act.Amount
			}
		}
	}
	switch h.HeroPosition {
	case "SB":
		invested += h.StakesSB
	case "BB":
		invested += h.StakesBB
	}
	collected := 0
	for _, cm := range reCollect.FindAllStringSubmatch(summary, -1) {
		if cm[1] == hero {
			collected += toCents(cm[2])
			h.HeroWon = true
		}
	}
	h.HeroResult = collected - invested
	return h, true
}

// ParseFile splits a history file into hand blocks on the header line and
// parses each.
func ParseFile(content, hero string) []*Hand {
	blocks := regexp.MustCompile(`\n{2,}`).Split(strings.TrimSpace(content), -1)
	var handsRaw []string
	var current []string
	for _, block := range blocks {
		head := block
		if len(head) > 300 {
			head = head[:300]
		}
		if reHeader.MatchString(head) {
			if len(current) > 0 {
				handsRaw = append(handsRaw, strings.Join(current, "\n\n"))
			}
			current = []string{block}
		} else {
			current = append(current, block)
		}
	}
	if len(current) > 0 {
		handsRaw = append(handsRaw, strings.Join(current, "\n\n"))
	}

	var out []*Hand
	for _, raw := range handsRaw {
		if h, ok := ParseHand(strings.TrimSpace(raw), hero); ok {
			out = append(out, h)
		}
	}
	return out
}
