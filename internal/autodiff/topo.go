package autodiff

// topoSort returns the strict ancestors of root in dependency order.
//
// The traversal is a post-order depth-first search started from each direct
// operand of root, deduplicated by node id. A node reached along several
// paths is emitted once, at the position where its first visit completes.
// Every node therefore appears after all of its operands; walking the
// result in reverse visits each node only after every consumer reachable
// from root has pushed its gradient into it. root itself is not included.
func (t *Tape[D]) topoSort(root int) []int {
	// Ancestors were recorded before root, so their ids are all below it.
	visited := make([]bool, root)
	order := make([]int, 0, root)

	var visit func(id int)
	visit = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, operand := range t.nodes[id].operands {
			visit(operand)
		}
		order = append(order, id)
	}

	for _, operand := range t.nodes[root].operands {
		visit(operand)
	}
	return order
}
