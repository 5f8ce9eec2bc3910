package svg

import (
	"strconv"
	"strings"
)

// Element kinds emitted by heatsvg.
const (
	KindSVG                 = "svg"
	KindGroup               = "g"
	KindDefs                = "defs"
	KindRect                = "rect"
	KindCircle              = "circle"
	KindUse                 = "use"
	KindRadialGradient      = "radialGradient"
	KindStop                = "stop"
	KindFilter              = "filter"
	KindFeGaussianBlur      = "feGaussianBlur"
	KindFeFlood             = "feFlood"
	KindFeBlend             = "feBlend"
	KindFeComponentTransfer = "feComponentTransfer"
	KindFeFuncR             = "feFuncR"
	KindFeFuncG             = "feFuncG"
	KindFeFuncB             = "feFuncB"
	KindFeFuncA             = "feFuncA"
)

// Attr is a single name/value attribute. Values are stored already formatted
// so a tree can be inspected and compared without a serializer.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Str returns a string attribute.
func Str(name, value string) Attr { return Attr{Name: name, Value: value} }

// Float returns a numeric attribute formatted with [FormatFloat].
func Float(name string, v float64) Attr { return Attr{Name: name, Value: FormatFloat(v)} }

// Floats returns a space-separated list attribute, as used by tableValues.
func Floats(name string, vs []float64) Attr {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatFloat(v)
	}
	return Attr{Name: name, Value: strings.Join(parts, " ")}
}

// URL returns a paint/filter reference attribute: url(#id).
func URL(name, id string) Attr { return Attr{Name: name, Value: "url(#" + id + ")"} }

// Href returns a fragment reference attribute: href="#id".
func Href(id string) Attr { return Attr{Name: "href", Value: "#" + id} }

// XLinkHref is the SVG 1.1 form of [Href]. The enclosing document must
// declare the xlink namespace.
func XLinkHref(id string) Attr { return Attr{Name: "xlink:href", Value: "#" + id} }

// FormatFloat formats v as the shortest plain decimal that parses back to v,
// so small magnitudes keep their relative precision. Negative zero prints as
// "0".
func FormatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Node is one element of a scene tree: a kind, its attributes in emission
// order, and its children.
type Node struct {
	Kind     string  `json:"kind"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// El creates a node of the given kind with attributes.
func El(kind string, attrs ...Attr) *Node {
	return &Node{Kind: kind, Attrs: attrs}
}

// Append adds children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the node's id attribute, or "".
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node of the given kind in document order, or nil.
func (n *Node) Find(kind string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == kind {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node of the given kind in document order.
func (n *Node) FindAll(kind string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindID returns the node whose id attribute equals id, or nil.
func (n *Node) FindID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID() == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// IDs returns every identifier the tree defines or references, deduplicated,
// in first-seen order. References are read from url(#...) values and from
// href fragments.
func (n *Node) IDs() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	n.Walk(func(c *Node) bool {
		for _, a := range c.Attrs {
			switch {
			case a.Name == "id":
				add(a.Value)
			case a.Name == "href" || a.Name == "xlink:href":
				add(strings.TrimPrefix(a.Value, "#"))
			case strings.HasPrefix(a.Value, "url(#"):
				add(strings.TrimSuffix(strings.TrimPrefix(a.Value, "url(#"), ")"))
			}
		}
		return true
	})
	return out
}
