package pysim

import "strings"

const linkedNodeClass = "ListNode"

var linkedValueAttrs = []string{"val", "value", "data"}

func (exec *execution) render(v Value) string {
	inst := v.Instance()
	if inst == nil || inst.Class.Name != linkedNodeClass {
		return v.String()
	}
	return renderLinkedList(inst, exec.interp.config.MaxLinkedNodes)
}

// renderLinkedList walks next pointers from head, printing at most limit
// nodes. A revisited node ends the chain with a cycle marker.
func renderLinkedList(head *Instance, limit int) string {
	var parts []string
	seen := make(map[*Instance]struct{})
	node := head
	for {
		if _, dup := seen[node]; dup {
			parts = append(parts, "... (cycle)")
			break
		}
		if len(parts) >= limit {
			parts = append(parts, "...")
			break
		}
		seen[node] = struct{}{}
		parts = append(parts, linkedNodeValue(node).String())

		next, ok := node.Attrs["next"]
		nextInst := next.Instance()
		if !ok || nextInst == nil {
			parts = append(parts, "None")
			break
		}
		node = nextInst
	}
	return strings.Join(parts, " -> ")
}

func linkedNodeValue(node *Instance) Value {
	for _, name := range linkedValueAttrs {
		if val, ok := node.Attrs[name]; ok {
			return val
		}
	}
	return NewNone()
}
