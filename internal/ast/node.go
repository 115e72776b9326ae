package ast

import (
	"fmt"
	"iter"
	"strings"
)

// Node is one element of a parsed document tree: a label, an optional text
// payload, and ordered children. Children stay nil until the first append,
// so a leaf carries no empty slice.
type Node struct {
	Name     string
	Data     string
	Children []*Node
}

// NewNode creates a node with the given label and payload.
func NewNode(name, data string) *Node {
	return &Node{Name: name, Data: data}
}

// AppendChild adds a child in insertion order.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Iter yields (depth, node) pairs depth-first, parent before children,
// children in insertion order. The sequence is finite and restartable.
func (n *Node) Iter(depth int) iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		n.walk(depth, yield)
	}
}

func (n *Node) walk(depth int, yield func(int, *Node) bool) bool {
	if !yield(depth, n) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(depth+1, yield) {
			return false
		}
	}
	return true
}

// HeaderLevel returns 1..6 for nodes named h1..h6 and 0 for everything else.
func (n *Node) HeaderLevel() int {
	if len(n.Name) == 2 && n.Name[0] == 'h' && n.Name[1] >= '1' && n.Name[1] <= '6' {
		return int(n.Name[1] - '0')
	}
	return 0
}

// Slug derives an anchor identifier from the node payload: lowercased,
// spaces become underscores, commas are removed.
func (n *Node) Slug() string {
	slug := strings.ToLower(n.Data)
	slug = strings.ReplaceAll(slug, " ", "_")
	return strings.ReplaceAll(slug, ",", "")
}

func (n *Node) line(depth int) string {
	indent := strings.Repeat("  ", depth)
	if n.Data != "" {
		return fmt.Sprintf("%s%s(%s)", indent, n.Name, n.Data)
	}
	return indent + n.Name
}
