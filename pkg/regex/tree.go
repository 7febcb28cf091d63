package regex

import (
	"fmt"
	"iter"
	"strings"
)

// FindAll yields n and every descendant in pre-order. The sequence is
// lazy and may be ranged over more than once.
func FindAll(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walk(n, yield)
	}
}

func walk(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// FindAllByType yields the nodes of FindAll whose kind is k.
func FindAllByType(n *Node, k Kind) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for x := range FindAll(n) {
			if x.Kind == k && !yield(x) {
				return
			}
		}
	}
}

// Width reports whether nodes of kind k consume input when they match.
func Width(k Kind) bool {
	switch k {
	case KindLiteral, KindCharClass, KindCategory, KindDot, KindRange, KindSuspicious:
		return true
	}
	return false
}

// Reconstruct rebuilds the raw text of n from its children and the text
// between them. For any tree returned by Parse, Reconstruct(root) equals
// the input pattern.
func Reconstruct(n *Node) string {
	if len(n.Children) == 0 {
		return n.Data
	}

	var b strings.Builder
	pos := n.Start
	for _, c := range n.Children {
		b.WriteString(n.Data[pos-n.Start : c.Start-n.Start])
		b.WriteString(Reconstruct(c))
		pos = c.End
	}
	b.WriteString(n.Data[pos-n.Start:])
	return b.String()
}

// FmtTree renders n as indented lines, one per node.
func FmtTree(n *Node) []string {
	var lines []string
	var rec func(*Node, int)
	rec = func(x *Node, depth int) {
		lines = append(lines, strings.Repeat("  ", depth)+describe(x))
		for _, c := range x.Children {
			rec(c, depth+1)
		}
	}
	rec(n, 0)
	return lines
}

func describe(n *Node) string {
	head := fmt.Sprintf("%s %d:%d (%d)", n.Kind, n.Start, n.End, n.ParsedStart)
	switch n.Kind {
	case KindGroup:
		head += " " + n.Group.String()
		if n.Name != "" {
			head += " " + n.Name
		}
	case KindRepetition:
		max := "inf"
		if n.Max != Unbounded {
			max = fmt.Sprint(n.Max)
		}
		head += fmt.Sprintf(" {%d,%s} greedy=%t", n.Min, max, n.Greedy)
	case KindAnchor:
		head += " " + n.Anchor.String()
	case KindCategory:
		head += " " + n.Category.String()
	}
	return head + fmt.Sprintf(" %q", n.Data)
}
