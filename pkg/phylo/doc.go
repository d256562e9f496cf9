// Package phylo builds trees from pairwise distances.
//
// A [Matrix] holds a symmetric distance matrix between named taxa (for
// example languages compared by lexical distance). [NeighborJoin] turns it
// into an unrooted-style binary tree whose branch lengths are stored in
// [tree.Node.Distance], ready for a phylogram layout.
//
// Matrices are read from CSV with a header row of names and one row per
// taxon:
//
//	,ka,xmf,lzz
//	ka,0,0.4,0.5
//	xmf,0.4,0,0.2
//	lzz,0.5,0.2,0
package phylo
