package employee

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// BuildHierarchy arranges employees into manager trees. Employees whose
// manager is missing from the input become roots. A reporting cycle is
// broken at its first member in input order.
func BuildHierarchy(employees []Employee) []*HierarchyNode {
	nodes := make(map[uuid.UUID]*HierarchyNode, len(employees))
	for _, e := range employees {
		n := &HierarchyNode{
			ID:         e.ID.String(),
			EmployeeID: e.EmployeeCode,
			Name:       e.Name(),
			Position:   e.Position,
			Children:   []*HierarchyNode{},
		}
		if e.Department != nil {
			n.Department = e.Department.Name
		}
		nodes[e.ID] = n
	}

	children := make(map[uuid.UUID][]uuid.UUID)
	var roots []uuid.UUID
	for _, e := range employees {
		if e.ManagerID != nil && *e.ManagerID != e.ID {
			if _, ok := nodes[*e.ManagerID]; ok {
				children[*e.ManagerID] = append(children[*e.ManagerID], e.ID)
				continue
			}
		}
		roots = append(roots, e.ID)
	}

	placed := make(map[uuid.UUID]bool, len(employees))
	var attach func(id uuid.UUID) *HierarchyNode
	attach = func(id uuid.UUID) *HierarchyNode {
		placed[id] = true
		n := nodes[id]
		for _, childID := range children[id] {
			if placed[childID] {
				continue
			}
			n.Children = append(n.Children, attach(childID))
		}
		sortNodes(n.Children)
		return n
	}

	tree := make([]*HierarchyNode, 0, len(roots))
	for _, id := range roots {
		tree = append(tree, attach(id))
	}
	for _, e := range employees {
		if !placed[e.ID] {
			tree = append(tree, attach(e.ID))
		}
	}
	sortNodes(tree)
	return tree
}

func sortNodes(nodes []*HierarchyNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}
