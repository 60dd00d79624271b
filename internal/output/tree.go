package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/modals/pkg/host"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	Kind     host.Kind
	ID       string
	Role     string
	Text     string
	Attrs    []string // rendered key=value pairs
	Focused  bool
	Hidden   bool
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth   int  // 0 = unlimited
	ShowText   bool // Whether to show element text
	ShowHidden bool // Whether to include collapsed or hidden subtrees
	TextWidth  int  // Truncation width for text, 0 = 32
}

// inspected lists the attributes shown next to each element.
var inspected = []string{
	"aria-modal", "aria-labelledby", "aria-describedby", "aria-invalid",
	"aria-live", "aria-label", "aria-selected", "tabindex", "data-z", "data-motion",
}

// FromElement builds a TreeNode for el and its subtree. focused marks the
// document's active element.
func FromElement(el *host.Element, focused *host.Element) TreeNode {
	n := TreeNode{
		Kind:    el.Kind,
		ID:      el.ID,
		Role:    el.Attr("role"),
		Text:    el.Text,
		Focused: el == focused,
		Hidden:  el.Collapsed || el.HasAttr("hidden"),
	}
	for _, name := range inspected {
		if el.HasAttr(name) {
			n.Attrs = append(n.Attrs, name+"="+el.Attr(name))
		}
	}
	for _, c := range el.Children() {
		n.Children = append(n.Children, FromElement(c, focused))
	}
	return n
}

// FromDocument builds the tree for the whole document body.
func FromDocument(doc *host.Document) TreeNode {
	return FromElement(doc.Body(), doc.ActiveElement())
}

// RenderTree renders a tree starting from a single root node
// Returns the complete tree as a string (without the root - just children)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
// Useful for embedding trees in other output
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

// Label formats one node's line content.
func Label(node TreeNode, opts TreeRenderOptions) string {
	parts := []string{node.Kind.String()}
	if node.ID != "" {
		parts[0] += "#" + node.ID
	}
	if node.Role != "" {
		parts = append(parts, "role="+node.Role)
	}
	parts = append(parts, node.Attrs...)
	if opts.ShowText && node.Text != "" {
		w := opts.TextWidth
		if w <= 0 {
			w = 32
		}
		text := strings.ReplaceAll(ansi.Strip(node.Text), "\n", " ")
		parts = append(parts, fmt.Sprintf("%q", ansi.Truncate(strings.TrimSpace(text), w, "…")))
	}
	if node.Hidden {
		parts = append(parts, "[hidden]")
	}
	if node.Focused {
		parts = append(parts, "\u25c0 focus") // ◀
	}
	return strings.Join(parts, " ")
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}
	if !opts.ShowHidden {
		nodes = slices.DeleteFunc(slices.Clone(nodes), func(n TreeNode) bool { return n.Hidden })
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		// Build connector
		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		lines = append(lines, prefix+connector+Label(node, opts))

		// Build prefix for children
		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}

		// Recurse for children
		childLines := renderTreeNodes(node.Children, opts, depth+1, childPrefix)
		lines = append(lines, childLines...)
	}

	return lines
}
