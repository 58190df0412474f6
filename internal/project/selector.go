package project

// Selector holds the ephemeral view state of the hierarchy control: which
// branches are expanded and whether the dropdown is open. It is scoped to one
// interactive session and never persisted; selection itself stays with the
// caller.
type Selector struct {
	expanded map[string]bool
	open     bool
}

func NewSelector() *Selector {
	return &Selector{expanded: make(map[string]bool)}
}

// ToggleExpand flips the expansion flag of one branch. Selection is not
// touched. Toggling twice restores the original state.
func (s *Selector) ToggleExpand(id string) {
	s.expanded[id] = !s.expanded[id]
}

func (s *Selector) IsExpanded(id string) bool {
	return s.expanded[id]
}

// Expand marks a branch expanded without toggling, used when restoring view
// state handed back by the client.
func (s *Selector) Expand(id string) {
	s.expanded[id] = true
}

func (s *Selector) Open()        { s.open = true }
func (s *Selector) IsOpen() bool { return s.open }

// Close collapses the dropdown, as when the user clicks outside it. The
// selection is left untouched.
func (s *Selector) Close() { s.open = false }

// TreeNode is one visible row of the rendered hierarchy.
type TreeNode struct {
	Project     Project `json:"project"`
	Depth       int     `json:"depth"`
	HasChildren bool    `json:"has_children"`
	Expanded    bool    `json:"expanded"`
	Selected    bool    `json:"selected"`
}

// VisibleNodes flattens the forest into the rows the control would render:
// roots always, children only under expanded branches, each level one deeper
// than its parent. Branches are collapsed unless the selector says otherwise.
func (s *Selector) VisibleNodes(f *Forest, selected Selection) []TreeNode {
	var out []TreeNode
	var walk func(p *Project, depth int)
	walk = func(p *Project, depth int) {
		children := f.Children(p.ID)
		node := TreeNode{
			Project:     *p,
			Depth:       depth,
			HasChildren: len(children) > 0,
			Expanded:    s.IsExpanded(p.ID),
			Selected:    selected.Contains(p.ID),
		}
		out = append(out, node)
		if !node.Expanded {
			return
		}
		for _, child := range children {
			walk(child, depth+1)
		}
	}
	for _, root := range f.Roots() {
		walk(root, 0)
	}
	return out
}
