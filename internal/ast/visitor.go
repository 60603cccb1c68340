package ast

// Handler processes one node during a Visitor traversal. Returning false
// prunes the node's subtree: no further handlers run for it and its
// children are not visited. State is whatever the caller passed to Visit.
type Handler func(n Node, state any) bool

// Visitor dispatches nodes to handlers by kind, with an optional generic
// fallback that runs for every node after the kind-specific handler.
// Dispatch is a plain table lookup; handlers are matched by tag equality,
// so Generic extension kinds dispatch like any fixed kind.
//
// A Visitor is not safe for concurrent use: AddVisitor mutates the table
// in place and must not race with an in-flight Visit.
type Visitor struct {
	handlers map[Kind]Handler
	generic  Handler
}

// NewVisitor builds a Visitor from a kind-to-handler table and an optional
// generic handler. Either argument may be nil.
func NewVisitor(handlers map[Kind]Handler, generic Handler) *Visitor {
	v := &Visitor{
		handlers: make(map[Kind]Handler, len(handlers)),
		generic:  generic,
	}
	for kind, h := range handlers {
		v.handlers[kind] = h
	}
	return v
}

// AddVisitor installs (or replaces) the handler for kind. Subsequent
// Visit calls see the new handler.
func (v *Visitor) AddVisitor(kind Kind, h Handler) {
	v.handlers[kind] = h
}

// Visit walks the tree rooted at node. For each node the kind-specific
// handler runs first, then the generic handler, then the children; a
// false return at either handler stage stops the subtree immediately.
func (v *Visitor) Visit(node Node, state any) {
	if node == nil {
		return
	}
	if h, ok := v.handlers[node.Kind()]; ok {
		if !h(node, state) {
			return
		}
	}
	if v.generic != nil {
		if !v.generic(node, state) {
			return
		}
	}
	for _, child := range Children(node) {
		v.Visit(child, state)
	}
}
