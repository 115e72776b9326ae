// Package markup parses weft's line-oriented document source into a tree.
//
// Lines starting with one to six '#' characters followed by a space become
// header nodes h1..h6. A ".. toctree::" directive collects the indented
// document names that follow it into a toctree node with ref children. Any
// other non-blank line becomes a paragraph node. Blank lines separate.
package markup

import (
	"fmt"
	"strings"

	"github.com/weft-dev/weft/internal/ast"
)

const toctreeDirective = ".. toctree::"

// Parse converts rendered source text into a document tree.
func Parse(source string) *ast.Document {
	doc := ast.NewDocument("")
	lines := strings.Split(source, "\n")
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if level := headerLevel(trimmed); level > 0 {
			doc.AppendChild(ast.NewNode(fmt.Sprintf("h%d", level), strings.TrimSpace(trimmed[level:])))
			continue
		}
		if trimmed == toctreeDirective {
			node := ast.NewNode("toctree", "")
			for i+1 < len(lines) {
				next := lines[i+1]
				name := strings.TrimSpace(next)
				if name == "" {
					i++
					continue
				}
				if !indented(next) {
					break
				}
				node.AppendChild(ast.NewNode("ref", name))
				i++
			}
			doc.AppendChild(node)
			continue
		}
		doc.AppendChild(ast.NewNode("p", trimmed))
	}
	return doc
}

func headerLevel(line string) int {
	level := 0
	for level < len(line) && level < 6 && line[level] == '#' {
		level++
	}
	if level == 0 || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

func indented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
