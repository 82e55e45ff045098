// Package strategy models the solved game tree: the action/chance node
// union, per-combo frequency aggregation, path navigation, and decision
// grading. Nodes are read-only once decoded; any number of consumers can
// traverse the same tree.
package strategy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type NodeType string

const (
	ActionNode NodeType = "action_node"
	ChanceNode NodeType = "chance_node"
)

const (
	PlayerOOP = 0
	PlayerIP  = 1
)

// Node is one vertex of a solved tree. Action nodes carry an ordered
// action -> child mapping plus the acting player's combo strategy; chance
// nodes carry a dealt-card -> child mapping. Child order follows the JSON
// document, which the solver emits in action declaration order.
type Node struct {
	Type   NodeType
	Player int // PlayerOOP, PlayerIP, or -1 when absent

	actionKeys []string
	actions    map[string]*Node
	dealKeys   []string
	deals      map[string]*Node

	// Strategy maps every combo in the acting player's range to its
	// frequency vector at this node.
	Strategy map[string][]float64
}

// ActionKeys returns the declared action labels in document order.
func (n *Node) ActionKeys() []string { return n.actionKeys }

// DealKeys returns the dealt-card labels in document order.
func (n *Node) DealKeys() []string { return n.dealKeys }

// ActionChild returns the child reached by an action label.
func (n *Node) ActionChild(label string) *Node { return n.actions[label] }

// Step is one labeled edge of a navigation path.
type Step struct {
	Label string
	Node  *Node
}

// Children returns the uniform child view. Action nodes expose their action
// children. Chance nodes expose dealt-card children merged with any
// action-like children they also carry; action children win key collisions.
func (n *Node) Children() []Step {
	if n == nil {
		return nil
	}
	if n.Type == ActionNode {
		out := make([]Step, 0, len(n.actionKeys))
		for _, k := range n.actionKeys {
			out = append(out, Step{Label: k, Node: n.actions[k]})
		}
		return out
	}
	out := make([]Step, 0, len(n.dealKeys)+len(n.actionKeys))
	for _, k := range n.dealKeys {
		if child, clash := n.actions[k]; clash {
			out = append(out, Step{Label: k, Node: child})
			continue
		}
		out = append(out, Step{Label: k, Node: n.deals[k]})
	}
	for _, k := range n.actionKeys {
		if _, dup := n.deals[k]; dup {
			continue
		}
		out = append(out, Step{Label: k, Node: n.actions[k]})
	}
	return out
}

// Child resolves one label through the Children view.
func (n *Node) Child(label string) *Node {
	if n == nil {
		return nil
	}
	if c, ok := n.actions[label]; ok {
		return c
	}
	return n.deals[label]
}

// IsTerminal reports a node with no children of either kind.
func (n *Node) IsTerminal() bool {
	return n == nil || (len(n.actionKeys) == 0 && len(n.dealKeys) == 0)
}

type rawStrategy struct {
	Strategy map[string][]float64 `json:"strategy"`
}

// UnmarshalJSON decodes a node while preserving child key order, which the
// stock map decoding would destroy. Implicit fold inference depends on that
// order matching the strategy vector layout.
func (n *Node) UnmarshalJSON(data []byte) error {
	n.Player = -1
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("node: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		switch key {
		case "node_type":
			var s string
			if err := dec.Decode(&s); err != nil {
				return err
			}
			n.Type = NodeType(s)
		case "player":
			var num json.Number
			if err := dec.Decode(&num); err != nil {
				return err
			}
			if v, err := num.Int64(); err == nil {
				n.Player = int(v)
			}
		case "childrens":
			keys, m, err := decodeChildMap(dec)
			if err != nil {
				return err
			}
			n.actionKeys, n.actions = keys, m
		case "deal_cards", "dealcards":
			keys, m, err := decodeChildMap(dec)
			if err != nil {
				return err
			}
			n.dealKeys, n.deals = keys, m
		case "strategy":
			var rs rawStrategy
			if err := dec.Decode(&rs); err != nil {
				return err
			}
			n.Strategy = rs.Strategy
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
	}
	_, err = dec.Token() // closing brace
	return err
}

func decodeChildMap(dec *json.Decoder) ([]string, map[string]*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); ok && d == '{' {
		var keys []string
		m := map[string]*Node{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			key, _ := keyTok.(string)
			child := &Node{}
			if err := dec.Decode(child); err != nil {
				return nil, nil, err
			}
			keys = append(keys, key)
			m[key] = child
		}
		if _, err := dec.Token(); err != nil {
			return nil, nil, err
		}
		return keys, m, nil
	}
	// null or anything else: no children
	return nil, nil, nil
}

// ParseTree decodes a full solver dump into its root node.
func ParseTree(data []byte) (*Node, error) {
	root := &Node{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}
	return root, nil
}
