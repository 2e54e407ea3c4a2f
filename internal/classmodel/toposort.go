package classmodel

import (
	"fmt"
	"sort"
)

// topoSort orders n nodes so that every node comes after the nodes depsFn
// says it depends on. When several nodes are ready the smallest index goes
// first, so the result is deterministic.
//
// Nodes that can never become ready sit on a cycle or depend on one; they are
// returned, sorted, in blocked.
func topoSort(n int, depsFn func(i int) []int) (order, blocked []int, err error) {
	if n <= 0 {
		return nil, nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	for i := range n {
		if indeg[i] > 0 {
			blocked = append(blocked, i)
		}
	}

	return order, blocked, nil
}

// childIndices returns, per class index, the indices of its known children.
// Unknown child names are skipped.
func (m *Model) childIndices() [][]int {
	deps := make([][]int, len(m.classes))

	for i, c := range m.classes {
		for _, ch := range c.Children {
			if j, ok := m.index[ch.Name]; ok {
				deps[i] = append(deps[i], j)
			}
		}
	}

	return deps
}

// ContainmentOrder returns class names ordered leaves first: every class comes
// after all classes it contains. It fails when containment has a cycle.
func (m *Model) ContainmentOrder() ([]string, error) {
	deps := m.childIndices()

	order, blocked, err := topoSort(len(m.classes), func(i int) []int { return deps[i] })
	if err != nil {
		return nil, err
	}

	if len(blocked) > 0 {
		return nil, fmt.Errorf("containment cycle through %v", m.namesAt(blocked))
	}

	return m.namesAt(order), nil
}

// reachable returns the names of classes reachable from root through children,
// root included.
func (m *Model) reachable(root string) map[string]struct{} {
	seen := map[string]struct{}{}
	queue := []string{root}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}

		c, ok := m.Class(name)
		if !ok {
			continue
		}

		for _, ch := range c.Children {
			queue = append(queue, ch.Name)
		}
	}

	return seen
}

func (m *Model) namesAt(indices []int) []string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = m.classes[idx].Name
	}

	return names
}
