package project

import (
	"fmt"
	"sort"
)

// Selection is a set of project ids. The caller owns it; the operations below
// never mutate a Selection they receive, they return a fresh one.
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Forest indexes a flat project list into a parent-indexed tree. Roots and
// sibling groups keep the input order. A project whose parent id does not
// resolve is unreachable: it is never rendered and never part of the live id
// set, though stale selections pointing at it are left alone.
type Forest struct {
	nodes    map[string]*Project
	children map[string][]string
	roots    []string
	liveIDs  []string
}

func BuildForest(projects []Project) *Forest {
	f := &Forest{
		nodes:    make(map[string]*Project, len(projects)),
		children: make(map[string][]string),
	}

	for i := range projects {
		p := &projects[i]
		if _, dup := f.nodes[p.ID]; dup {
			continue
		}
		f.nodes[p.ID] = p
		if p.ParentID == nil {
			f.roots = append(f.roots, p.ID)
		} else {
			f.children[*p.ParentID] = append(f.children[*p.ParentID], p.ID)
		}
	}

	// live ids = everything reachable from a root, in render order
	for _, root := range f.roots {
		f.liveIDs = append(f.liveIDs, root)
		f.liveIDs = append(f.liveIDs, f.Descendants(root)...)
	}

	return f
}

func (f *Forest) Get(id string) (*Project, bool) {
	p, ok := f.nodes[id]
	return p, ok
}

func (f *Forest) Roots() []*Project {
	out := make([]*Project, 0, len(f.roots))
	for _, id := range f.roots {
		out = append(out, f.nodes[id])
	}
	return out
}

func (f *Forest) Children(id string) []*Project {
	ids := f.children[id]
	out := make([]*Project, 0, len(ids))
	for _, cid := range ids {
		out = append(out, f.nodes[cid])
	}
	return out
}

// Descendants returns every project reachable by following parent links
// downward from id, excluding id itself, in render order.
func (f *Forest) Descendants(id string) []string {
	var out []string
	stack := make([]string, 0, len(f.children[id]))
	// reverse push so pop order matches input order
	for i := len(f.children[id]) - 1; i >= 0; i-- {
		stack = append(stack, f.children[id][i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		kids := f.children[cur]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// LiveIDs returns the ids of every project reachable from a root, in render
// order.
func (f *Forest) LiveIDs() []string {
	out := make([]string, len(f.liveIDs))
	copy(out, f.liveIDs)
	return out
}

// SetSelected applies a single click on a node: the node and its whole
// subtree are selected or deselected together. Parents are never inferred
// from children and there is no partial state.
func (f *Forest) SetSelected(selected Selection, id string, on bool) Selection {
	affected := append([]string{id}, f.Descendants(id)...)
	out := selected.clone()
	for _, a := range affected {
		if on {
			out[a] = struct{}{}
		} else {
			delete(out, a)
		}
	}
	return out
}

// SelectAll replaces the selection with every live project id, or clears it.
func (f *Forest) SelectAll(on bool) Selection {
	if !on {
		return NewSelection()
	}
	return NewSelection(f.liveIDs...)
}

// AllSelected reports whether the selection equals the live id set exactly,
// by size and membership. Stale ids in the selection break the equality.
func (f *Forest) AllSelected(selected Selection) bool {
	if len(selected) != len(f.liveIDs) {
		return false
	}
	for _, id := range f.liveIDs {
		if !selected.Contains(id) {
			return false
		}
	}
	return true
}

// TopLevelSelected returns the selected projects whose parent is absent or
// itself unselected: the topmost extent of each selected chain, in render
// order. Stale selected ids have no node and are skipped.
func (f *Forest) TopLevelSelected(selected Selection) []*Project {
	var out []*Project
	for _, id := range f.liveIDs {
		if !selected.Contains(id) {
			continue
		}
		node := f.nodes[id]
		if node.ParentID == nil {
			out = append(out, node)
			continue
		}
		if _, parentExists := f.nodes[*node.ParentID]; !parentExists || !selected.Contains(*node.ParentID) {
			out = append(out, node)
		}
	}
	return out
}

// SummaryLabel derives the human-readable description of a selection shown on
// the collapsed control.
func (f *Forest) SummaryLabel(selected Selection) string {
	if len(selected) == 0 {
		return "Select Projects"
	}
	if f.AllSelected(selected) {
		return "All Projects"
	}
	top := f.TopLevelSelected(selected)
	if len(top) == 1 {
		return top[0].Name
	}
	return fmt.Sprintf("%d Projects Selected", len(top))
}

// NormalizeIDs returns the selection as a slice in render order; stale ids
// (not part of the forest) are appended last so they survive a round trip.
func (f *Forest) NormalizeIDs(selected Selection) []string {
	out := make([]string, 0, len(selected))
	for _, id := range f.liveIDs {
		if selected.Contains(id) {
			out = append(out, id)
		}
	}
	if len(out) == len(selected) {
		return out
	}
	seen := NewSelection(out...)
	var stale []string
	for id := range selected {
		if !seen.Contains(id) {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	return append(out, stale...)
}
