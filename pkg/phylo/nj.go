package phylo

import (
	"math"

	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// NeighborJoin builds a binary tree from m by neighbor joining.
//
// Each step joins the pair (i, j) minimizing
// Q(i,j) = (n-2)·d(i,j) - Σd(i,·) - Σd(j,·) under a new parent named
// "i.j", with branch lengths
//
//	d(i,p) = d(i,j)/2 + (Σd(i,·) - Σd(j,·)) / (2(n-2))
//	d(j,p) = d(i,j) - d(i,p)
//
// and distances from the parent to every other taxon k of
// (d(i,k) + d(j,k) - d(i,j)) / 2. The last pair becomes the root. Negative
// branch lengths are clamped to zero and the difference moved to the
// sibling. The formulas above are commonly applied unclamped, as in the
// pipeline they come from, but negative lengths fail tree.Validate. Ties
// are broken by the lowest row, then column index.
func NeighborJoin(m *Matrix) (*tree.Node, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	nodes := make([]*tree.Node, m.Len())
	for i, name := range m.Names {
		nodes[i] = tree.New(name)
	}
	d := make([][]float64, m.Len())
	for i := range m.D {
		d[i] = append([]float64(nil), m.D[i]...)
	}

	for len(nodes) > 1 {
		n := len(nodes)
		sums := make([]float64, n)
		for i := range n {
			for _, v := range d[i] {
				sums[i] += v
			}
		}

		bi, bj := closestPair(d, sums)
		dij := d[bi][bj]

		var di float64
		if n == 2 {
			di = dij / 2
		} else {
			di = dij/2 + (sums[bi]-sums[bj])/(2*float64(n-2))
		}
		di = math.Min(math.Max(di, 0), dij)
		dj := dij - di

		a, b := nodes[bi], nodes[bj]
		a.Distance, b.Distance = di, dj
		parent := tree.New(a.Name+"."+b.Name, a, b)

		toParent := make([]float64, 0, n-1)
		var rest []*tree.Node
		var restIdx []int
		for k := range n {
			if k == bi || k == bj {
				continue
			}
			rest = append(rest, nodes[k])
			restIdx = append(restIdx, k)
			toParent = append(toParent, (d[bi][k]+d[bj][k]-dij)/2)
		}

		next := make([][]float64, len(rest)+1)
		for r, k := range restIdx {
			row := make([]float64, 0, len(rest)+1)
			for _, c := range restIdx {
				row = append(row, d[k][c])
			}
			next[r] = append(row, toParent[r])
		}
		next[len(rest)] = append(toParent, 0)

		nodes = append(rest, parent)
		d = next
	}

	return nodes[0], nil
}

// closestPair returns i < j minimizing the neighbor joining criterion.
func closestPair(d [][]float64, sums []float64) (int, int) {
	n := len(d)
	bi, bj := 0, 1
	best := math.Inf(1)
	for i := range n {
		for j := i + 1; j < n; j++ {
			q := float64(n-2)*d[i][j] - sums[i] - sums[j]
			if q < best {
				best, bi, bj = q, i, j
			}
		}
	}
	return bi, bj
}
