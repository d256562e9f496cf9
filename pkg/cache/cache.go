// Package cache stores rendered artifacts so that re-rendering an unchanged
// tree with unchanged options is free.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP service)
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// Keys are produced by a [Keyer] from a content hash of the tree and the
// options that influence the output, so any change to either misses.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true on a hit, or false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout of the tree with hash treeHash.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of the tree with hash treeHash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Radius        float64 `json:"radius"`
	BranchLengths bool    `json:"branch_lengths,omitempty"`
	LeavesAligned bool    `json:"leaves_aligned,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Layout    LayoutKeyOpts `json:"layout"`
	VizType   string        `json:"viz_type,omitempty"`
	Format    string        `json:"format"`
	LinkStyle string        `json:"link_style"`
	Width     float64       `json:"width,omitempty"`
	Height    float64       `json:"height,omitempty"`
	Margin    float64       `json:"margin,omitempty"`
	Scale     float64       `json:"scale,omitempty"`
	Detailed  bool          `json:"detailed,omitempty"`
	Title     string        `json:"title,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}
