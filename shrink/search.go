package shrink

// Result is the outcome of a shrink Search: the smallest value reached, and
// how many candidates were accepted (still falsified the property) versus
// rejected (passed, or otherwise did not reproduce the failure) along the
// way.
type Result[T any] struct {
	Value    T
	Accepted int
	Rejected int
	Explored int
}

// Search performs the greedy depth-first descent described by the shrink
// search component: starting at root's children, it accepts the first one
// for which check reports still-failing and immediately descends into it,
// abandoning the remaining siblings at that level. It keeps descending into
// accepted children's own children until either a level produces no
// accepted child (the result is then locally minimal: none of its evaluated
// children falsified the property) or budget calls to check have been
// spent.
//
// check must itself guard against the property panicking on a candidate;
// Search does not catch panics, so a panicking check aborts the whole
// search rather than just rejecting that one candidate.
//
// observe, when non-nil, is called once per candidate check evaluates, with
// the candidate's value and whether it was accepted or rejected. It exists
// so a caller can surface shrink-accept / shrink-reject observability events
// without Search itself depending on a logger.
func Search[T any](root Tree[T], budget int, check func(T) bool, observe func(value T, accepted bool)) Result[T] {
	best := root.Value()
	current := root
	remaining := budget
	accepted, rejected := 0, 0

	for remaining > 0 {
		descended := false
		for _, child := range current.Children() {
			if remaining == 0 {
				break
			}
			remaining--
			ok := check(child.Value())
			if observe != nil {
				observe(child.Value(), ok)
			}
			if ok {
				accepted++
				best = child.Value()
				current = child
				descended = true
				break
			}
			rejected++
		}
		if !descended {
			break
		}
	}

	return Result[T]{Value: best, Accepted: accepted, Rejected: rejected, Explored: budget - remaining}
}
