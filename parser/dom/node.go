package dom

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedTag is returned when a tag name falls outside the element
// kinds this parser knows how to build.
var ErrUnsupportedTag = errors.New("unsupported tag name")

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	DocumentNode
)

// ElementKind is the closed set of elements the tree constructor can open.
type ElementKind uint

const (
	HTML ElementKind = iota
	Head
	Body
)

// TagName returns the lower-cased tag name for the kind.
func (k ElementKind) TagName() string {
	switch k {
	case HTML:
		return "html"
	case Head:
		return "head"
	case Body:
		return "body"
	}
	return ""
}

// ElementKindForTag maps a lower-cased tag name to its element kind. Any
// other name is a hard failure, not a default.
func ElementKindForTag(tag string) (ElementKind, error) {
	switch tag {
	case "html":
		return HTML, nil
	case "head":
		return Head, nil
	case "body":
		return Body, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedTag, "%q", tag)
}

// Node is a single cell of the document tree.
//
// FirstChild/NextSibling are the canonical walk order; Parent, LastChild and
// PrevSibling are back-references maintained by AppendChild. Nodes are linked
// into a tree at creation time by the tree constructor and never detached.
// https://dom.spec.whatwg.org/#interface-node
type Node struct {
	Type NodeType
	// Kind is meaningful only when Type is ElementNode.
	Kind ElementKind
	// Data accumulates character data when Type is TextNode.
	Data string

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node
}

// NewDocumentNode returns the root marker node.
func NewDocumentNode() *Node {
	return &Node{Type: DocumentNode}
}

// NewElementNode returns a detached element of the given kind.
func NewElementNode(kind ElementKind) *Node {
	return &Node{Type: ElementNode, Kind: kind}
}

// NewElementNodeForTag returns a detached element for a tag name, or
// ErrUnsupportedTag when the name is outside the recognized set.
func NewElementNodeForTag(tag string) (*Node, error) {
	kind, err := ElementKindForTag(tag)
	if err != nil {
		return nil, err
	}
	return NewElementNode(kind), nil
}

// NewTextNode returns a detached text node seeded with text.
func NewTextNode(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

// AppendChild links child as the last child of n in O(1) using the LastChild
// back-reference. Document order of siblings is the order of appends.
func (n *Node) AppendChild(child *Node) *Node {
	child.Parent = n
	if n.LastChild != nil {
		n.LastChild.NextSibling = child
		child.PrevSibling = n.LastChild
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
	return child
}

// AppendData appends a rune to a text node's accumulation buffer.
func (n *Node) AppendData(r rune) {
	n.Data += string(r)
}

// HasChildNodes reports whether n has any children.
func (n *Node) HasChildNodes() bool {
	return n.FirstChild != nil
}

func serializeNodeType(node *Node) string {
	switch node.Type {
	case DocumentNode:
		return "#document"
	case ElementNode:
		return "<" + node.Kind.TagName() + ">"
	case TextNode:
		return "\"" + node.Data + "\""
	}
	return ""
}

func (n *Node) serialize(indent int) string {
	ser := serializeNodeType(n) + "\n"
	if n.Type != DocumentNode {
		spaces := "| "
		for i := 1; i < indent; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		ser += child.serialize(indent + 1)
	}
	return ser
}

// String renders the subtree in the tree-dump format used by the
// html5lib-tests suite.
func (n *Node) String() string {
	return strings.TrimRight(n.serialize(0), "\n")
}

func (n *Node) render(b *strings.Builder) {
	switch n.Type {
	case ElementNode:
		b.WriteString("<" + n.Kind.TagName() + ">")
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			child.render(b)
		}
		b.WriteString("</" + n.Kind.TagName() + ">")
	case TextNode:
		b.WriteString(n.Data)
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			child.render(b)
		}
	}
}

// Render serializes the subtree back to markup text. Re-parsing the result of
// a successful parse yields an isomorphic tree.
func (n *Node) Render() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

// Isomorphic reports whether two trees carry the same node kinds in the same
// first-child/next-sibling order.
func Isomorphic(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	if a.Type == ElementNode && a.Kind != b.Kind {
		return false
	}
	if a.Type == TextNode && a.Data != b.Data {
		return false
	}
	return Isomorphic(a.FirstChild, b.FirstChild) && Isomorphic(a.NextSibling, b.NextSibling)
}
