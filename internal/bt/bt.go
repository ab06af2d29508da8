// Package bt is a small behavior tree runtime.
//
// Nodes are a closed set of kinds dispatched by a single switch in Tick.
// Composite nodes keep a cursor so a child that returns Running is resumed
// on the next tick instead of restarting the composite from its first child.
package bt

// Status is the result of ticking a node.
type Status uint8

const (
	Success Status = iota
	Failure
	Running
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Kind identifies the node variant.
type Kind uint8

const (
	KindSequence Kind = iota
	KindSelector
	KindCondition
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindSelector:
		return "selector"
	case KindCondition:
		return "condition"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// Node is one node of a tree evaluated against a context of type C.
// Only the payload matching Kind is used.
type Node[C any] struct {
	Kind     Kind
	Name     string
	Children []*Node[C]

	cond   func(C) bool
	action func(C) Status
	cursor int
}

// Sequence ticks children in order until one does not succeed.
func Sequence[C any](name string, children ...*Node[C]) *Node[C] {
	return &Node[C]{Kind: KindSequence, Name: name, Children: children}
}

// Selector ticks children in order until one does not fail.
func Selector[C any](name string, children ...*Node[C]) *Node[C] {
	return &Node[C]{Kind: KindSelector, Name: name, Children: children}
}

// Condition maps a predicate to Success or Failure.
func Condition[C any](name string, fn func(C) bool) *Node[C] {
	return &Node[C]{Kind: KindCondition, Name: name, cond: fn}
}

// Action runs fn and returns its status unchanged.
func Action[C any](name string, fn func(C) Status) *Node[C] {
	return &Node[C]{Kind: KindAction, Name: name, action: fn}
}

// Tick evaluates the node once.
func (n *Node[C]) Tick(ctx C) Status {
	switch n.Kind {
	case KindSequence:
		for n.cursor < len(n.Children) {
			switch n.Children[n.cursor].Tick(ctx) {
			case Running:
				return Running
			case Failure:
				n.cursor = 0
				return Failure
			}
			n.cursor++
		}
		n.cursor = 0
		return Success

	case KindSelector:
		for n.cursor < len(n.Children) {
			switch n.Children[n.cursor].Tick(ctx) {
			case Running:
				return Running
			case Success:
				n.cursor = 0
				return Success
			}
			n.cursor++
		}
		n.cursor = 0
		return Failure

	case KindCondition:
		if n.cond != nil && n.cond(ctx) {
			return Success
		}
		return Failure

	case KindAction:
		if n.action == nil {
			return Failure
		}
		return n.action(ctx)
	}
	return Failure
}

// Cursor reports the index of the child a composite will tick next.
func (n *Node[C]) Cursor() int { return n.cursor }

// Rewind clears the cursor of n only. Descendants keep their progress.
func (n *Node[C]) Rewind() { n.cursor = 0 }

// Reset clears the cursor of n and every descendant.
func (n *Node[C]) Reset() {
	n.cursor = 0
	for _, c := range n.Children {
		c.Reset()
	}
}
