// Package frametree resolves the path from a frame node to a common root,
// and the shared ancestor of two such paths, for both the ephemeris tree
// (origin-body hops) and the orientation tree (rotational-frame hops). Both
// trees use the identical algorithm in this package; the caller supplies a
// NextHop function specialized to its kind: look up the next node toward
// the root, accumulate the hop, stop at the root.
package frametree

import "github.com/haldring/daffodil/internal/kernelerr"

// MaxTreeDepth bounds the path from any node to the root. A path requiring
// more hops is a fatal integrity error (MaxRecursionDepth), not a case to
// grow the array for.
const MaxTreeDepth = 8

// NextHop looks up the next hop toward the root from node at epoch t. It
// returns ok=false if node has no known next hop (node is unreachable, not
// necessarily the root) and an error only for a genuine lookup failure.
type NextHop func(node int, t float64) (next int, ok bool, err error)

// Path is a fixed-capacity sequence of frame ids, rooted at index 0 = the
// query node and ending at the discovered root (or shared ancestor).
type Path struct {
	Nodes [MaxTreeDepth + 1]int
	Len   int
}

// PathToRoot walks from node to root by repeated NextHop lookups, bailing
// out with kernelerr.ErrMaxRecursionDepth once the walk exceeds maxDepth
// hops. maxDepth lets a caller enforce a tighter, configurable ceiling than
// MaxTreeDepth, which remains the hard limit backing Path's fixed array —
// a maxDepth greater than MaxTreeDepth is clamped down to it.
func PathToRoot(node, root int, t float64, next NextHop, maxDepth int) (Path, error) {
	if maxDepth > MaxTreeDepth || maxDepth <= 0 {
		maxDepth = MaxTreeDepth
	}
	var p Path
	p.Nodes[0] = node
	p.Len = 1
	cur := node
	for cur != root {
		if p.Len > maxDepth {
			return Path{}, kernelerr.ErrMaxRecursionDepth
		}
		hop, ok, err := next(cur, t)
		if err != nil {
			return Path{}, err
		}
		if !ok {
			return Path{}, kernelerr.ErrDisjointRoots
		}
		p.Nodes[p.Len] = hop
		p.Len++
		cur = hop
	}
	return p, nil
}

// CommonAncestor finds the shared ancestor of two paths computed by
// PathToRoot (or any paths rooted at the same ultimate root). Identical
// query frames are handled first; every other case, including one query
// frame appearing on the other path, is resolved by the general search.
//
// It returns the common node id, the prefix of a (a's path up to and
// including the common node) and the prefix of b (b's path up to and
// including the common node).
func CommonAncestor(a, b Path) (common int, aPrefix, bPrefix []int, err error) {
	if a.Len == 0 || b.Len == 0 {
		return 0, nil, nil, kernelerr.ErrDisjointRoots
	}
	if a.Nodes[0] == b.Nodes[0] {
		return a.Nodes[0], []int{a.Nodes[0]}, []int{b.Nodes[0]}, nil
	}

	bIndex := make(map[int]int, b.Len)
	for i := 0; i < b.Len; i++ {
		bIndex[b.Nodes[i]] = i
	}

	for i := 0; i < a.Len; i++ {
		if j, ok := bIndex[a.Nodes[i]]; ok {
			return a.Nodes[i], append([]int(nil), a.Nodes[:i+1]...), append([]int(nil), b.Nodes[:j+1]...), nil
		}
	}
	return 0, nil, nil, kernelerr.ErrDisjointRoots
}
