package weft

import (
	"sort"
	"strconv"

	"github.com/weft-ui/weft/pkg/vdom"
)

// reconcileChildren diffs the component-call nodes in an instance's fresh
// output against its previous children map and decides reuse, create, or
// destroy for each.
//
// Matching key: the call's explicit key if present, otherwise its position
// path through the output tree plus the component's identity. A previous
// child is reused iff keys match and the component handle is the same;
// reuse preserves the hook stack and rebinds arguments. Identity mismatch
// under an explicit key is destroy-then-create: hook state is never handed
// to a different function.
func (s *Scheduler) reconcileChildren(inst *Instance, tree *vdom.VNode, queue *effectQueue) {
	next := make(map[string]*Instance)

	var walk func(n *vdom.VNode, path string)
	walk = func(n *vdom.VNode, path string) {
		if n == nil {
			return
		}

		if n.Kind == vdom.KindComponent {
			s.reconcileCall(inst, n, path, next, queue)
			return
		}

		for i, child := range n.Children {
			walk(child, childPath(path, i))
		}
	}
	walk(tree, "")

	// Previous children with no matching call in the new output are
	// destroyed, cascading through their own subtrees.
	pb := &panicBox{}
	for _, key := range sortedChildKeys(inst.children) {
		prev := inst.children[key]
		if next[key] != prev {
			prev.destroy(pb)
		}
	}

	inst.children = next
	pb.rethrow()
}

// reconcileCall matches one component-call node against the previous child
// occupying its identity slot.
func (s *Scheduler) reconcileCall(inst *Instance, n *vdom.VNode, path string, next map[string]*Instance, queue *effectQueue) {
	comp, ok := n.Comp.(*Component)
	if !ok {
		return
	}

	key := identityKey(n, comp, path)
	prev := inst.children[key]

	if prev != nil && !prev.destroyed && prev.comp == comp {
		// Reuse: hook state preserved, arguments rebound. A Normal child is
		// re-invoked only if its arguments changed or it is itself dirty; a
		// Virtual child defers to its own pass.
		changed := !propsEqual(prev.props, n.Props)
		prev.props = n.Props
		next[key] = prev

		if comp.boundary == BoundaryNormal {
			if changed || s.isDirty(prev) {
				s.renderInstance(prev, queue)
			}
		} else if changed {
			s.MarkDirty(prev)
		}
		return
	}

	if prev != nil && !prev.destroyed {
		// Same slot, different component: destroy-then-create.
		pb := &panicBox{}
		prev.destroy(pb)
		pb.rethrow()
	}

	child := s.newInstance(inst, comp, key, n.Props)
	next[key] = child
	s.renderInstance(child, queue)
}

// identityKey computes the reconciliation key for a component call.
func identityKey(n *vdom.VNode, comp *Component, path string) string {
	if n.Key != "" {
		return "k:" + n.Key
	}
	return "p:" + path + "/c:" + strconv.FormatUint(comp.id, 10)
}

// childPath extends a position path with a child index.
func childPath(path string, i int) string {
	if path == "" {
		return strconv.Itoa(i)
	}
	return path + "." + strconv.Itoa(i)
}

// sortedChildKeys returns map keys in a stable order for deterministic
// destruction cascades.
func sortedChildKeys(children map[string]*Instance) []string {
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// expand resolves an instance's last output into a committed tree: every
// component call is replaced by the rendered subtree of the child instance
// occupying its slot. The result is what containers receive.
func expand(inst *Instance) *vdom.VNode {
	if inst == nil || inst.tree == nil {
		return nil
	}

	var resolve func(n *vdom.VNode, path string) *vdom.VNode
	resolve = func(n *vdom.VNode, path string) *vdom.VNode {
		if n == nil {
			return nil
		}

		if n.Kind == vdom.KindComponent {
			comp, ok := n.Comp.(*Component)
			if !ok {
				return nil
			}
			child := inst.children[identityKey(n, comp, path)]
			if child == nil {
				return nil
			}
			sub := expand(child)
			if sub != nil && n.Key != "" && sub.Key == "" {
				// Surface the call's key on the expanded root so keyed
				// sibling diffs track moves.
				keyed := *sub
				keyed.Key = n.Key
				return &keyed
			}
			return sub
		}

		if len(n.Children) == 0 {
			return n
		}

		out := *n
		out.Children = make([]*vdom.VNode, 0, len(n.Children))
		for i, child := range n.Children {
			if r := resolve(child, childPath(path, i)); r != nil {
				out.Children = append(out.Children, r)
			}
		}
		return &out
	}

	return resolve(inst.tree, "")
}
