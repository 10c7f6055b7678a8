package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/hmans/bookshelf/internal/model"
)

// TreeNode represents an author or a book in the library tree.
type TreeNode struct {
	Kind string
	ID   int
	Name string
	// Missing marks an author that books point at but that does not exist.
	Missing bool
	// Unassigned groups the books that have no author id at all.
	Unassigned bool
	Children   []*TreeNode
}

// TreeNodeJSON is the JSON-serializable version of TreeNode.
type TreeNodeJSON struct {
	Kind       string          `json:"kind"`
	ID         int             `json:"id"`
	Name       string          `json:"name,omitempty"`
	Missing    bool            `json:"missing,omitempty"`
	Unassigned bool            `json:"unassigned,omitempty"`
	Children   []*TreeNodeJSON `json:"children,omitempty"`
}

// ToJSON converts a TreeNode to its JSON-serializable form.
func (n *TreeNode) ToJSON() *TreeNodeJSON {
	json := &TreeNodeJSON{
		Kind:       n.Kind,
		ID:         n.ID,
		Name:       n.Name,
		Missing:    n.Missing,
		Unassigned: n.Unassigned,
	}
	if len(n.Children) > 0 {
		json.Children = make([]*TreeNodeJSON, len(n.Children))
		for i, child := range n.Children {
			json.Children[i] = child.ToJSON()
		}
	}
	return json
}

// BuildTree groups books under their authors. Authors come out in id order;
// books whose author does not exist are grouped under a Missing author node
// placed after the real ones, and books without an author id go last under
// an Unassigned node.
// sortFn: function to sort the books of each author
func BuildTree(authors []*model.Author, books []*model.Book, sortFn func([]*model.Book)) []*TreeNode {
	// Build children index (author ID -> books)
	children := make(map[int][]*model.Book)
	var unassigned []*model.Book
	for _, b := range books {
		if b.AuthorID == nil {
			unassigned = append(unassigned, b)
			continue
		}
		children[*b.AuthorID] = append(children[*b.AuthorID], b)
	}

	sorted := make([]*model.Author, len(authors))
	copy(sorted, authors)
	model.SortAuthors(sorted)

	known := make(map[int]bool, len(sorted))
	nodes := make([]*TreeNode, 0, len(sorted))
	for _, a := range sorted {
		known[a.ID] = true
		nodes = append(nodes, &TreeNode{
			Kind:     KindNameAuthor,
			ID:       a.ID,
			Name:     lo.FromPtr(a.Name),
			Children: bookNodes(children[a.ID], sortFn),
		})
	}

	var missing []int
	for authorID := range children {
		if !known[authorID] {
			missing = append(missing, authorID)
		}
	}
	sort.Ints(missing)
	for _, authorID := range missing {
		nodes = append(nodes, &TreeNode{
			Kind:     KindNameAuthor,
			ID:       authorID,
			Missing:  true,
			Children: bookNodes(children[authorID], sortFn),
		})
	}

	if len(unassigned) > 0 {
		nodes = append(nodes, &TreeNode{
			Kind:       KindNameAuthor,
			Unassigned: true,
			Children:   bookNodes(unassigned, sortFn),
		})
	}

	return nodes
}

func bookNodes(books []*model.Book, sortFn func([]*model.Book)) []*TreeNode {
	if sortFn != nil {
		sortFn(books)
	}
	nodes := make([]*TreeNode, len(books))
	for i, b := range books {
		nodes[i] = &TreeNode{Kind: KindNameBook, ID: b.ID, Name: lo.FromPtr(b.Name)}
	}
	return nodes
}

// Tree rendering constants
const (
	treeBranch     = "├─ "
	treeLastBranch = "└─ "
	treeIndent     = 3 // width of connector (├─  or └─ )

	kindWidth         = 10
	DefaultTitleWidth = 50
)

// calculateMaxDepth returns the maximum depth of the tree.
func calculateMaxDepth(nodes []*TreeNode) int {
	maxDepth := 0
	for _, node := range nodes {
		depth := 1 + calculateMaxDepth(node.Children)
		if depth > maxDepth {
			maxDepth = depth
		}
	}
	return maxDepth
}

// MaxIDWidth returns the widest rendered id in the tree.
func MaxIDWidth(nodes []*TreeNode) int {
	width := 2
	for _, node := range nodes {
		if w := len(strconv.Itoa(node.ID)); w > width {
			width = w
		}
		if w := MaxIDWidth(node.Children); w > width {
			width = w
		}
	}
	return width
}

// RenderTree renders the tree as an ASCII tree with styled columns.
// titleWidth caps the NAME column; names longer than that are truncated.
func RenderTree(nodes []*TreeNode, titleWidth int) string {
	var sb strings.Builder

	if titleWidth < 10 {
		titleWidth = DefaultTitleWidth
	}

	// The ID column needs room for the connectors of the deepest level.
	maxIDWidth := MaxIDWidth(nodes)
	treeColWidth := maxIDWidth
	if maxDepth := calculateMaxDepth(nodes); maxDepth > 1 {
		treeColWidth = maxIDWidth + (maxDepth-1)*treeIndent
	}
	treeColWidth += 2

	idStyle := lipgloss.NewStyle().Width(treeColWidth)
	kindStyle := lipgloss.NewStyle().Width(kindWidth)
	headerCol := lipgloss.NewStyle().Foreground(ColorMuted)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render(headerCol.Render("ID")),
		kindStyle.Render(headerCol.Render("KIND")),
		headerCol.Render("NAME"),
	)
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(Muted.Render(strings.Repeat("─", treeColWidth+kindWidth+titleWidth)))
	sb.WriteString("\n")

	renderNodes(&sb, nodes, 0, treeColWidth, titleWidth)

	return sb.String()
}

// renderNodes recursively renders tree nodes with proper indentation.
// depth 0 = root level (no connector), depth 1+ = nested (has connector)
func renderNodes(sb *strings.Builder, nodes []*TreeNode, depth int, treeColWidth, titleWidth int) {
	for i, node := range nodes {
		isLast := i == len(nodes)-1
		renderNode(sb, node, depth, isLast, treeColWidth, titleWidth)
		renderNodes(sb, node.Children, depth+1, treeColWidth, titleWidth)
	}
}

func renderNode(sb *strings.Builder, node *TreeNode, depth int, isLast bool, treeColWidth, titleWidth int) {
	kindStyle := lipgloss.NewStyle().Width(kindWidth)

	var indent, connector string
	if depth > 0 {
		if depth > 1 {
			indent = strings.Repeat("   ", depth-1)
		}
		if isLast {
			connector = treeLastBranch
		} else {
			connector = treeBranch
		}
	}

	id := strconv.Itoa(node.ID)
	idText := ID.Render(id)
	switch {
	case node.Missing:
		idText = Danger.Render(id)
	case node.Unassigned:
		id = "-"
		idText = Muted.Render(id)
	}

	// Pad using the visual width, the styled text carries ANSI codes.
	visualWidth := len(indent) + runeWidth(connector) + len(id)
	padding := ""
	if treeColWidth > visualWidth {
		padding = strings.Repeat(" ", treeColWidth-visualWidth)
	}
	idCell := TreeLine.Render(indent+connector) + idText + padding

	var nameText string
	switch {
	case node.Missing:
		nameText = Danger.Render("(missing author)")
	case node.Unassigned:
		nameText = Muted.Render("(no author)")
	case node.Name == "":
		nameText = Muted.Render("(untitled)")
	case node.Kind == KindNameAuthor:
		nameText = Title.Render(truncateString(node.Name, titleWidth))
	default:
		nameText = truncateString(node.Name, titleWidth)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		idCell,
		kindStyle.Render(RenderKindText(node.Kind)),
		nameText,
	)

	sb.WriteString(row)
	sb.WriteString("\n")
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// runeWidth returns the visual width of a string (counting runes, not bytes).
// This assumes all runes are single-width (which works for our tree connectors).
func runeWidth(s string) int {
	return len([]rune(s))
}
