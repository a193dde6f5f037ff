// Package cst holds a minimal concrete-syntax-tree model used only to
// present a scan's output for inspection (cmd/zscan's tree dump). It is
// deliberately not a GLR parse tree: building a real parser table from
// the grammar this scanner feeds is out of scope. Node shape follows
// ava12-llx's tree package (Node/NonTermNode), trimmed to one struct that
// keeps its children in a slice and holds scanner.Symbol leaves instead of
// lexer.Token.
package cst

import (
	"fmt"
	"strings"

	"gozshscan/internal/scanner"
)

// Node is one terminal emitted by the scanner, decorated with the source
// span it covers. Leaves never have children; cmd/zscan builds a flat
// sequence of these rather than a nested tree, since nesting would
// require the excluded GLR grammar to decide where boundaries fall.
type Node struct {
	Symbol scanner.Symbol
	Text   []byte
	Start  int
	End    int

	// Label names a synthetic non-leaf node (e.g. the root BuildFlat
	// creates); leaves are always identified by Symbol instead.
	Label string

	parent   *Node
	children []*Node
}

// NewLeaf creates a childless Node covering [start, end) of the source.
func NewLeaf(sym scanner.Symbol, text []byte, start, end int) *Node {
	return &Node{Symbol: sym, Text: append([]byte(nil), text...), Start: start, End: end}
}

// AppendChild attaches child under n, replacing any prior parent link.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) IsLeaf() bool      { return len(n.children) == 0 }

// Level reports n's depth below the root (0 for a root node).
func (n *Node) Level() int {
	l := 0
	for p := n.parent; p != nil; p = p.parent {
		l++
	}
	return l
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		c.Walk(visit)
	}
}

// Dump renders a tree, one node per line, indented by depth -- grounded
// on the kind of flat human-readable dump a tree-sitter `--debug` or
// playground view produces, since no official corpus-test harness is in
// scope here.
func Dump(root *Node) string {
	var b strings.Builder
	root.Walk(func(n *Node) {
		b.WriteString(strings.Repeat("  ", n.Level()))
		if n.IsLeaf() {
			fmt.Fprintf(&b, "%s [%d,%d)", n.Symbol, n.Start, n.End)
			if len(n.Text) > 0 {
				fmt.Fprintf(&b, " %q", n.Text)
			}
		} else {
			name := n.Label
			if name == "" {
				name = "root"
			}
			fmt.Fprintf(&b, "(%s)", name)
		}
		b.WriteByte('\n')
	})
	return b.String()
}

// BuildFlat assembles a single root Node whose children are the terminals
// produced by one grammar.Run (or any ordered Symbol/span list), in the
// order they were scanned. It is the shape cmd/zscan's default output
// uses: a flat list under a synthetic root, not a parsed hierarchy.
func BuildFlat(rootLabel string, leaves []*Node) *Node {
	root := &Node{Label: rootLabel}
	for _, l := range leaves {
		root.AppendChild(l)
	}
	return root
}
