package sitescan

import "strings"

// MinNodeHeight is the rendered height a DOM node must exceed to appear in a
// captured tree. Smaller nodes are pruned along with their subtrees.
const MinNodeHeight = 50

// Rect is a bounding box in absolute document coordinates.
// Top includes the scroll offset at capture time.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the exclusive lower edge of the box.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// DOMNode is one element of the pruned geometry tree captured from a page.
type DOMNode struct {
	Tag       string     `json:"tag"`
	ID        string     `json:"id,omitempty"`
	ClassName string     `json:"className,omitempty"`
	Rect      Rect       `json:"rect"`
	Children  []*DOMNode `json:"children,omitempty"`
}

// Normalize coerces a freshly decoded tree into its invariant form: tags are
// lowercased, whitespace is collapsed in class names, and children at or below
// minHeight are removed. It returns the number of nodes kept.
func (n *DOMNode) Normalize(minHeight float64) int {
	n.Tag = strings.ToLower(strings.TrimSpace(n.Tag))
	n.ID = strings.TrimSpace(n.ID)
	n.ClassName = strings.Join(strings.Fields(n.ClassName), " ")

	count := 1
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child == nil || child.Rect.Height <= minHeight {
			continue
		}
		count += child.Normalize(minHeight)
		kept = append(kept, child)
	}
	n.Children = kept
	if len(n.Children) == 0 {
		n.Children = nil
	}
	return count
}

// FirstClass returns the first class name of the node, or "".
func (n *DOMNode) FirstClass() string {
	if i := strings.IndexByte(n.ClassName, ' '); i >= 0 {
		return n.ClassName[:i]
	}
	return n.ClassName
}

// Selector returns a CSS selector that re-locates the node:
// tag#id, tag.firstClass, or the bare tag.
func (n *DOMNode) Selector() string {
	if n.ID != "" {
		return n.Tag + "#" + EscapeIdent(n.ID)
	}
	if class := n.FirstClass(); class != "" {
		return n.Tag + "." + EscapeIdent(class)
	}
	return n.Tag
}

// Visitor is called for every node reached by Walk. Returning true stops
// Walk from descending into the node's children.
type Visitor func(node *DOMNode, depth int) (stopDescending bool)

// Walk performs a depth-first, pre-order traversal starting at n (depth 0).
// maxDepth < 0 means unlimited; otherwise nodes deeper than maxDepth are not
// visited.
func (n *DOMNode) Walk(maxDepth int, visit Visitor) {
	n.walk(0, maxDepth, visit)
}

func (n *DOMNode) walk(depth, maxDepth int, visit Visitor) {
	if maxDepth >= 0 && depth > maxDepth {
		return
	}
	if visit(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(depth+1, maxDepth, visit)
	}
}

// EscapeIdent escapes s for use as a CSS identifier (the CSS.escape algorithm
// without the NUL handling).
func EscapeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 0x1 && r <= 0x1f || r == 0x7f:
			writeHexEscape(&b, r)
		case i == 0 && r >= '0' && r <= '9':
			writeHexEscape(&b, r)
		case i == 1 && r >= '0' && r <= '9' && s[0] == '-':
			writeHexEscape(&b, r)
		case i == 0 && r == '-' && len(s) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeHexEscape(b *strings.Builder, r rune) {
	const hex = "0123456789abcdef"
	b.WriteByte('\\')
	if r >= 16 {
		b.WriteByte(hex[r>>4&0xf])
	}
	b.WriteByte(hex[r&0xf])
	b.WriteByte(' ')
}
