// Package confignode reads the brace-delimited key/value documents used by
// craft files, part configs and save files.
//
//	ship = Kerbal X
//	type = VAB
//	PART
//	{
//		part = fuelTank_4294511720
//		istg = 2
//		RESOURCE { name = LiquidFuel
//			amount = 180 }
//	}
package confignode

// Value is a single key/value pair. Keys may repeat within a node.
type Value struct {
	Key   string
	Value string
	Line  int
}

// Node is a named block holding ordered values and child nodes.
// The document root has an empty name.
type Node struct {
	Name     string
	Line     int
	values   []Value
	children []*Node
}

// Value returns the first value stored under key
func (n *Node) Value(key string) (string, bool) {
	for _, v := range n.values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// ValueOr returns the first value stored under key, or def when absent
func (n *Node) ValueOr(key, def string) string {
	if v, ok := n.Value(key); ok {
		return v
	}
	return def
}

// Values returns every value stored under key in document order
func (n *Node) Values(key string) []string {
	var out []string
	for _, v := range n.values {
		if v.Key == key {
			out = append(out, v.Value)
		}
	}
	return out
}

// Nodes returns the direct children in document order
func (n *Node) Nodes() []*Node {
	return n.children
}

// NodesNamed returns the direct children called name
func (n *Node) NodesNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Node returns the first direct child called name
func (n *Node) Node(name string) (*Node, bool) {
	for _, c := range n.children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func (n *Node) addValue(key, value string, line int) {
	n.values = append(n.values, Value{Key: key, Value: value, Line: line})
}

func (n *Node) addChild(name string, line int) *Node {
	child := &Node{Name: name, Line: line}
	n.children = append(n.children, child)
	return child
}
