package pave

import (
	"slices"
	"sort"
)

// Permitted mirrors the shape of the declared parameters. Scalar
// parameters map to nil, Hash and Array parameters to a nested tree that
// holds the fields declared for their children. Array elements share their
// array's node, so an empty node under an Array means "list of scalars".
//
// The tree is meant for a host framework's own input filtering.
type Permitted map[string]Permitted

// Has reports whether the rendered path was declared.
func (p Permitted) Has(path string) bool {
	return slices.Contains(p.Paths(), path)
}

// Paths lists every declared leaf as a bracketed path, sorted. Composite
// parameters without declared children render with a trailing "[]".
func (p Permitted) Paths() []string {
	var out []string
	p.collect(nil, &out)
	sort.Strings(out)
	return out
}

func (p Permitted) collect(prefix []string, out *[]string) {
	for key, node := range p {
		path := append(append([]string{}, prefix...), key)

		switch {
		case node == nil:
			*out = append(*out, renderPath(path))
		case len(node) == 0:
			*out = append(*out, renderPath(path)+PathOpen+PathClose)
		default:
			node.collect(path, out)
		}
	}
}

// Tree converts p to nested map[string]any with true leaves, the form most
// filtering helpers accept.
func (p Permitted) Tree() map[string]any {
	out := make(map[string]any, len(p))
	for key, node := range p {
		if node == nil {
			out[key] = true
			continue
		}
		out[key] = node.Tree()
	}
	return out
}
