package frametree

import (
	"errors"
	"testing"

	"github.com/haldring/daffodil/internal/kernelerr"
)

// linearChain builds a NextHop over the chain n -> n-1 -> ... -> 0, where 0
// is the root and has no further hop.
func linearChain(maxNode int) NextHop {
	return func(node int, t float64) (int, bool, error) {
		if node <= 0 || node > maxNode {
			return 0, false, nil
		}
		return node - 1, true, nil
	}
}

func TestPathToRootTrivial(t *testing.T) {
	p, err := PathToRoot(0, 0, 0, linearChain(5), MaxTreeDepth)
	if err != nil {
		t.Fatalf("PathToRoot: %v", err)
	}
	if p.Len != 1 || p.Nodes[0] != 0 {
		t.Errorf("path = %v, want [0]", p.Nodes[:p.Len])
	}
}

func TestPathToRootWalksChain(t *testing.T) {
	p, err := PathToRoot(3, 0, 0, linearChain(5), MaxTreeDepth)
	if err != nil {
		t.Fatalf("PathToRoot: %v", err)
	}
	want := []int{3, 2, 1, 0}
	if p.Len != len(want) {
		t.Fatalf("path length = %d, want %d", p.Len, len(want))
	}
	for i, w := range want {
		if p.Nodes[i] != w {
			t.Errorf("Nodes[%d] = %d, want %d", i, p.Nodes[i], w)
		}
	}
}

func TestPathToRootDisjoint(t *testing.T) {
	disjoint := func(node int, t float64) (int, bool, error) { return 0, false, nil }
	if _, err := PathToRoot(3, 0, 0, disjoint, MaxTreeDepth); !errors.Is(err, kernelerr.ErrDisjointRoots) {
		t.Errorf("err = %v, want ErrDisjointRoots", err)
	}
}

func TestPathToRootMaxRecursionDepth(t *testing.T) {
	// root -1 is unreachable: the chain counts upward from 0 and never
	// arrives at it, so the walk exhausts MaxTreeDepth hops.
	infinite := func(node int, t float64) (int, bool, error) { return node + 1, true, nil }
	if _, err := PathToRoot(0, -1, 0, infinite, MaxTreeDepth); !errors.Is(err, kernelerr.ErrMaxRecursionDepth) {
		t.Errorf("err = %v, want ErrMaxRecursionDepth", err)
	}
}

func TestCommonAncestorIdenticalQuery(t *testing.T) {
	a, err := PathToRoot(2, 0, 0, linearChain(5), MaxTreeDepth)
	if err != nil {
		t.Fatalf("PathToRoot a: %v", err)
	}
	b, err := PathToRoot(2, 0, 0, linearChain(5), MaxTreeDepth)
	if err != nil {
		t.Fatalf("PathToRoot b: %v", err)
	}
	common, aPre, bPre, err := CommonAncestor(a, b)
	if err != nil {
		t.Fatalf("CommonAncestor: %v", err)
	}
	if common != 2 {
		t.Errorf("common = %d, want 2", common)
	}
	if len(aPre) != 1 || aPre[0] != 2 || len(bPre) != 1 || bPre[0] != 2 {
		t.Errorf("prefixes = %v / %v, want [2] / [2]", aPre, bPre)
	}
}

func TestCommonAncestorGeneral(t *testing.T) {
	// a: 4 -> 3 -> 2 -> 1 -> 0
	// b: 5 -> 2 -> 1 -> 0
	// shared ancestor should be 2.
	a, err := PathToRoot(4, 0, 0, linearChain(5), MaxTreeDepth)
	if err != nil {
		t.Fatalf("PathToRoot a: %v", err)
	}
	branch := func(node int, t float64) (int, bool, error) {
		if node == 5 {
			return 2, true, nil
		}
		return linearChain(5)(node, t)
	}
	b, err := PathToRoot(5, 0, 0, branch, MaxTreeDepth)
	if err != nil {
		t.Fatalf("PathToRoot b: %v", err)
	}
	common, aPre, bPre, err := CommonAncestor(a, b)
	if err != nil {
		t.Fatalf("CommonAncestor: %v", err)
	}
	if common != 2 {
		t.Errorf("common = %d, want 2", common)
	}
	if got := aPre; len(got) != 3 || got[2] != 2 {
		t.Errorf("aPrefix = %v, want to end at 2", got)
	}
	if got := bPre; len(got) != 2 || got[1] != 2 {
		t.Errorf("bPrefix = %v, want to end at 2", got)
	}
}

func TestCommonAncestorDisjoint(t *testing.T) {
	a, _ := PathToRoot(1, 0, 0, linearChain(5), MaxTreeDepth)
	disjointRoot := func(node int, t float64) (int, bool, error) {
		if node == 9 {
			return 0, false, nil
		}
		return 9, true, nil
	}
	b, err := PathToRoot(10, 9, 0, disjointRoot, MaxTreeDepth)
	if err != nil {
		t.Fatalf("PathToRoot b: %v", err)
	}
	if _, _, _, err := CommonAncestor(a, b); !errors.Is(err, kernelerr.ErrDisjointRoots) {
		t.Errorf("err = %v, want ErrDisjointRoots", err)
	}
}
