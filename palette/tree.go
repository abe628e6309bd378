package palette

import (
	"image/color"
	"math"
	"sort"
)

type entry struct {
	c     color.RGBA
	index int
}

type node struct {
	entry
	axis        int
	left, right *node
}

// Tree is a k-d tree over a palette. It returns exactly the same results as
// Palette.Nearest, including the choice between equidistant entries, but
// visits only a handful of entries per lookup. A Tree is immutable and safe
// for concurrent use.
type Tree struct {
	root *node
	size int
}

func channel(c color.RGBA, axis int) int {
	switch axis {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

func build(entries []entry, depth int) *node {
	if len(entries) == 0 {
		return nil
	}

	axis := depth % 3
	sort.Slice(entries, func(i, j int) bool {
		a, b := channel(entries[i].c, axis), channel(entries[j].c, axis)
		if a != b {
			return a < b
		}
		return entries[i].index < entries[j].index
	})

	m := len(entries) >> 1
	return &node{
		entry: entries[m],
		axis:  axis,
		left:  build(entries[:m], depth+1),
		right: build(entries[m+1:], depth+1),
	}
}

// NewTree builds a Tree from the entries of p.
func NewTree(p Palette) *Tree {
	entries := make([]entry, len(p))
	for i, c := range p {
		entries[i] = entry{c, i}
	}
	return &Tree{
		root: build(entries, 0),
		size: len(p),
	}
}

// Len returns the number of colors in the tree.
func (t *Tree) Len() int {
	return t.size
}

type search struct {
	target color.RGBA
	best   entry
	dist   int
}

func (s *search) visit(n *node) {
	if n == nil {
		return
	}

	if d := sqDist(s.target, n.c); d < s.dist || (d == s.dist && n.index < s.best.index) {
		s.best, s.dist = n.entry, d
	}

	diff := channel(s.target, n.axis) - channel(n.c, n.axis)
	near, far := n.left, n.right
	if diff > 0 {
		near, far = far, near
	}

	s.visit(near)

	// Equal coordinates can sit on either side of the split, so a far
	// subtree at exactly the current best distance may still hold an
	// earlier entry
	if diff*diff <= s.dist {
		s.visit(far)
	}
}

// Index returns the palette index of the entry closest to c, or -1 if the
// tree is empty.
func (t *Tree) Index(c color.RGBA) int {
	s := search{
		target: c,
		best:   entry{index: -1},
		dist:   math.MaxInt32,
	}
	s.visit(t.root)
	return s.best.index
}

// Nearest returns the entry closest to c. It panics if the tree is empty.
func (t *Tree) Nearest(c color.RGBA) color.RGBA {
	s := search{
		target: c,
		best:   entry{index: -1},
		dist:   math.MaxInt32,
	}
	s.visit(t.root)
	if s.best.index < 0 {
		panic("palette: empty tree")
	}
	return s.best.c
}
