package scenegraph

import "github.com/go-gl/mathgl/mgl32"

// Hit is the nearest mesh node a ray struck.
type Hit struct {
	Node     *Node
	Distance float32
}

// Raycast tests the ray against the world box of every visible mesh node under
// root whose ancestry (itself included) has an interactive node. The nearest
// hit wins.
func Raycast(root *Node, origin, dir mgl32.Vec3) (Hit, bool) {
	if root == nil || dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()
	var best Hit
	found := false
	var visit func(n *Node, parent mgl32.Mat4, interactive bool)
	visit = func(n *Node, parent mgl32.Mat4, interactive bool) {
		if !n.Visible {
			return
		}
		world := parent.Mul4(n.LocalMatrix())
		interactive = interactive || n.Interactive
		if interactive && n.Mesh != nil {
			if d, ok := n.Mesh.Bounds.Transform(world).IntersectRay(origin, dir); ok {
				if !found || d < best.Distance {
					best = Hit{Node: n, Distance: d}
					found = true
				}
			}
		}
		for _, c := range n.children {
			visit(c, world, interactive)
		}
	}
	visit(root, root.parentMatrix(), false)
	return best, found
}

// InteractiveAncestor returns the closest node from n upward flagged
// interactive, or nil.
func InteractiveAncestor(n *Node) *Node {
	for x := n; x != nil; x = x.parent {
		if x.Interactive {
			return x
		}
	}
	return nil
}

// CarRoot returns the car root enclosing n, or nil.
func CarRoot(n *Node) *Node {
	if _, ok := n.CarID(); !ok && !n.IsCarRoot() {
		return nil
	}
	for x := n; x != nil; x = x.parent {
		if x.IsCarRoot() {
			return x
		}
	}
	return nil
}
