// Package ast models a parsed document as an ordered, labeled tree.
package ast

import "strings"

// UntitledTitle is returned for documents without an h1 node.
const UntitledTitle = "Untitled"

// Document is the root node of a parsed document.
type Document struct {
	Node
}

// NewDocument creates an empty document root.
func NewDocument(data string) *Document {
	return &Document{Node: Node{Name: "doc", Data: data}}
}

// Title returns the payload of the first h1 node in document order, or
// UntitledTitle when the document has none.
func (d *Document) Title() string {
	for _, node := range d.Iter(0) {
		if node.Name == "h1" {
			return node.Data
		}
	}
	return UntitledTitle
}

// Headers returns every header node in document order.
func (d *Document) Headers() []*Node {
	var headers []*Node
	for _, node := range d.Iter(0) {
		if node.HeaderLevel() > 0 {
			headers = append(headers, node)
		}
	}
	return headers
}

// Dump renders the tree one node per line, indented by depth.
func (d *Document) Dump() string {
	var lines []string
	for depth, node := range d.Iter(0) {
		lines = append(lines, node.line(depth))
	}
	return strings.Join(lines, "\n")
}
