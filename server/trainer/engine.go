package trainer

import (
	"math"
	"math/rand"

	"gto-rangelab/server/strategy"
)

// ActionOption is one choice the hero can take at the current node,
// with the solver frequency for the hero's exact combo.
type ActionOption struct {
	Name    string  `json:"name"`
	GtoFreq float64 `json:"gto_freq"`
}

func heroPlayer(heroPosition string) int {
	if heroPosition == "ip" {
		return strategy.PlayerIP
	}
	return strategy.PlayerOOP
}

// IsVillainNode reports whether the villain acts at n. When the node
// carries no player index the hero's combo is looked up in the strategy
// map directly: a node that solved the hero's hand is a hero node.
func IsVillainNode(n *strategy.Node, heroPosition, heroCombo string) bool {
	if n == nil || n.Type != strategy.ActionNode {
		return false
	}
	if n.Player >= 0 {
		return n.Player != heroPlayer(heroPosition)
	}
	if len(n.Strategy) == 0 {
		return false
	}
	_, ok := n.Strategy[heroCombo]
	return !ok
}

// SampleVillainAction draws an action from the villain's range-average
// strategy at n.
func SampleVillainAction(n *strategy.Node, rng *rand.Rand) string {
	entries, err := strategy.ActionEntries(n)
	if err != nil || len(entries) == 0 {
		keys := n.ActionKeys()
		if len(keys) == 0 {
			return "CHECK"
		}
		return keys[rng.Intn(len(keys))]
	}
	freqs := strategy.AggregateActions(n.Strategy, entries)
	total := 0.0
	for _, f := range freqs {
		total += f.Freq
	}
	if total <= 0 {
		return entries[rng.Intn(len(entries))].Name
	}
	r := rng.Float64() * total
	acc := 0.0
	for _, f := range freqs {
		acc += f.Freq
		if r < acc {
			return f.Name
		}
	}
	return entries[len(entries)-1].Name
}

// AvailableActions lists the hero's choices at n with per-combo solver
// frequencies, falling back to the range average when the combo is not
// in the strategy map even under suit isomorphism.
func AvailableActions(n *strategy.Node, heroCombo string) ([]ActionOption, error) {
	entries, err := strategy.ActionEntries(n)
	if err != nil {
		return nil, err
	}
	out := make([]ActionOption, 0, len(entries))
	for _, e := range entries {
		// a node with no strategy map grades every action as uniform
		f := 1.0 / float64(len(entries))
		if len(n.Strategy) > 0 {
			f = strategy.ComboActionFreq(n.Strategy, heroCombo, e.Index, len(entries))
		}
		out = append(out, ActionOption{Name: e.Name, GtoFreq: round4(f)})
	}
	return out, nil
}

// AdvanceToHero walks the tree from the current path position until the
// hero is to act or the line ends. Chance nodes deal a random unblocked
// card and villain nodes sample from the solved strategy. It returns the
// history steps taken ("[Kh]" for deals, "V:BET 23" for villain actions)
// and whether the line terminated before reaching the hero.
func AdvanceToHero(path *strategy.Path, heroPosition, heroCombo string, blocked map[string]bool, rng *rand.Rand) (history []string, terminal bool) {
	for {
		n := path.Current()
		if n == nil {
			return history, true
		}
		switch n.Type {
		case strategy.ChanceNode:
			var deals []string
			for _, card := range n.DealKeys() {
				if !blocked[card] {
					deals = append(deals, card)
				}
			}
			if len(deals) == 0 {
				return history, true
			}
			card := deals[rng.Intn(len(deals))]
			if err := path.Push(card); err != nil {
				return history, true
			}
			blocked[card] = true
			history = append(history, "["+card+"]")
		case strategy.ActionNode:
			if len(n.ActionKeys()) == 0 {
				return history, true
			}
			if !IsVillainNode(n, heroPosition, heroCombo) {
				return history, false
			}
			act := SampleVillainAction(n, rng)
			if err := path.Push(act); err != nil {
				return history, true
			}
			history = append(history, "V:"+act)
		default:
			return history, true
		}
	}
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
