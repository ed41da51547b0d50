// Package render turns component instances into a render tree, and the
// render tree into HTML.
//
// Interpretation is a pure function of (component, resolver): no caching,
// no fallback fetches, no mutation of the input. The builder's live preview
// and the public page renderer both call the same entry points in this
// package; any behavioral difference between the two surfaces is a defect,
// so neither surface carries rendering logic of its own.
package render

import (
	"html"
	"strconv"
	"strings"
)

// Kind discriminates render node variants.
type Kind int

const (
	// KindElement is an HTML element with attributes and children.
	KindElement Kind = iota
	// KindText is an escaped text leaf.
	KindText
	// KindRaw is a pre-sanitized HTML leaf emitted verbatim.
	KindRaw
)

// Attr is one HTML attribute. Attribute order is the order of insertion,
// so identical inputs always serialize identically.
type Attr struct {
	Key string
	Val string
}

// Node is one node of the render tree.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El creates an element node.
func El(tag string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Children: children}
}

// Text creates a text leaf; content is escaped on serialization.
func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Raw creates a raw HTML leaf. Callers must sanitize the content first;
// the serializer emits it verbatim.
func Raw(s string) *Node {
	return &Node{Kind: KindRaw, Text: s}
}

// WithAttr sets an attribute, replacing any existing value for the key
// while keeping the key's original position.
func (n *Node) WithAttr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// WithClass appends to the class attribute.
func (n *Node) WithClass(class string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == "class" {
			if n.Attrs[i].Val == "" {
				n.Attrs[i].Val = class
			} else {
				n.Attrs[i].Val += " " + class
			}
			return n
		}
	}
	return n.WithAttr("class", class)
}

// WithStyle appends one CSS declaration to the style attribute.
func (n *Node) WithStyle(prop, val string) *Node {
	decl := prop + ":" + val
	for i := range n.Attrs {
		if n.Attrs[i].Key == "style" {
			if n.Attrs[i].Val == "" {
				n.Attrs[i].Val = decl
			} else {
				n.Attrs[i].Val += ";" + decl
			}
			return n
		}
	}
	return n.WithAttr("style", decl)
}

// Attr returns an attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Append adds children and returns the node.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// voidElements per the HTML spec never carry children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HTML serializes the node tree deterministically.
func (n *Node) HTML() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	switch n.Kind {
	case KindText:
		sb.WriteString(html.EscapeString(n.Text))
	case KindRaw:
		sb.WriteString(n.Text)
	case KindElement:
		sb.WriteString("<")
		sb.WriteString(n.Tag)
		for _, a := range n.Attrs {
			sb.WriteString(" ")
			sb.WriteString(a.Key)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(a.Val))
			sb.WriteString(`"`)
		}
		if voidElements[n.Tag] {
			sb.WriteString("/>")
			return
		}
		sb.WriteString(">")
		for _, c := range n.Children {
			c.writeTo(sb)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteString(">")
	}
}

// Equal reports structural equality of two trees.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Tag != other.Tag || n.Text != other.Text {
		return false
	}
	if len(n.Attrs) != len(other.Attrs) || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Attrs {
		if n.Attrs[i] != other.Attrs[i] {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// px renders an integer CSS pixel length.
func px(v int) string {
	return strconv.Itoa(v) + "px"
}
