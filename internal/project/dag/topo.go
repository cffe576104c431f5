package dag

import "slices"

type Topo struct {
	Order   []ModuleID   // dependencies before their users
	Batches [][]ModuleID // волны модулей, не зависящих друг от друга
	Cyclic  bool
	Cycles  []ModuleID // modules Kahn could not place
}

// ToposortKahn orders modules so that every module follows the local
// modules it imports.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Deps)
	pending := make([]int, n)
	topo := &Topo{Order: make([]ModuleID, 0, n)}

	var current []ModuleID
	for i := range n {
		pending[i] = len(g.Deps[i])
		if pending[i] == 0 {
			current = append(current, ModuleID(i))
		}
	}

	for len(current) > 0 {
		topo.Batches = append(topo.Batches, current)
		var next []ModuleID
		for _, id := range current {
			topo.Order = append(topo.Order, id)
			for _, user := range g.Users[id] {
				pending[user]--
				if pending[user] == 0 {
					next = append(next, user)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != n {
		topo.Cyclic = true
		for i := range n {
			if pending[i] > 0 {
				topo.Cycles = append(topo.Cycles, ModuleID(i))
			}
		}
	}
	return topo
}
