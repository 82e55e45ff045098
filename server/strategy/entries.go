package strategy

import (
	"errors"
	"fmt"
)

// ErrInconsistentNode marks a node whose strategy vector length matches
// neither its child count nor child count plus one. No safe action naming
// exists for such a node.
var ErrInconsistentNode = errors.New("strategy vector length inconsistent with child actions")

// ActionEntry pairs an action name with its index into every combo's
// frequency vector at a node.
type ActionEntry struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// ActionEntries resolves the action naming for a node. The solver encodes a
// childless fold as an extra leading vector slot: when a combo's vector is
// one longer than the child list, index 0 is FOLD and the children follow
// at 1..n. Equal lengths map one to one. Anything else is a data error.
func ActionEntries(n *Node) ([]ActionEntry, error) {
	keys := n.ActionKeys()
	stratLen := -1
	for _, vec := range n.Strategy {
		stratLen = len(vec)
		break
	}
	if stratLen < 0 {
		// No combos to infer from: map children directly.
		out := make([]ActionEntry, len(keys))
		for i, k := range keys {
			out[i] = ActionEntry{Name: k, Index: i}
		}
		return out, nil
	}
	switch stratLen {
	case len(keys) + 1:
		out := make([]ActionEntry, 0, stratLen)
		out = append(out, ActionEntry{Name: "FOLD", Index: 0})
		for i, k := range keys {
			out = append(out, ActionEntry{Name: k, Index: i + 1})
		}
		return out, nil
	case len(keys):
		out := make([]ActionEntry, len(keys))
		for i, k := range keys {
			out[i] = ActionEntry{Name: k, Index: i}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d actions for %d children", ErrInconsistentNode, stratLen, len(keys))
	}
}
