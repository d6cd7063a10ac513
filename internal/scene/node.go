package scene

// ProxyID names a proxy toucher: a hand or finger stand-in that can start
// touch drawing, such as a tracked index finger or the desktop mouse.
type ProxyID string

// Node is an element of the scene hierarchy. A node with a non-empty Proxy
// is a proxy-input object (a networked hand); everything parented under it
// is bound to that proxy.
type Node struct {
	Name   string
	Parent *Node
	Proxy  ProxyID
}

func NewNode(name string, parent *Node) *Node {
	return &Node{Name: name, Parent: parent}
}

// NewProxyNode creates a proxy-input node.
func NewProxyNode(name string, parent *Node, id ProxyID) *Node {
	return &Node{Name: name, Parent: parent, Proxy: id}
}

// ProxyAncestor walks from n up to the root, including n itself, and returns
// the first proxy binding found.
func (n *Node) ProxyAncestor() (ProxyID, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Proxy != "" {
			return cur.Proxy, true
		}
	}
	return "", false
}

// Path returns the slash separated names from the root to n.
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.Path() + "/" + n.Name
}
