// Package storage keeps rendered artifacts so they can be fetched again by
// ID.
//
// A [Record] is one rendered output of one tree. Backends implement
// [Store]:
//   - [MemoryStore]: in-process map for tests and single-shot servers
//   - [FileStore]: JSON files in a directory for the CLI
//   - [MongoStore]: a MongoDB collection for shared deployments
//
//	rec := storage.NewRecord(treeHash, "svg", "arc", svg)
//	if err := store.Put(ctx, rec); err != nil {
//	    return err
//	}
//	rec, err := store.Get(ctx, rec.ID)
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

// ErrNotFound is returned by Get when no record has the requested ID.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "render not found")

// Record is a stored render artifact.
type Record struct {
	ID          string    `json:"id" bson:"_id"`
	TreeHash    string    `json:"tree_hash" bson:"tree_hash"`
	Format      string    `json:"format" bson:"format"`
	LinkStyle   string    `json:"link_style" bson:"link_style"`
	ContentType string    `json:"content_type" bson:"content_type"`
	Data        []byte    `json:"data,omitempty" bson:"data"`
	Size        int       `json:"size" bson:"size"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord returns a record with a fresh random ID.
func NewRecord(treeHash, format, linkStyle string, data []byte) *Record {
	return &Record{
		ID:          uuid.NewString(),
		TreeHash:    treeHash,
		Format:      format,
		LinkStyle:   linkStyle,
		ContentType: ContentType(format),
		Data:        data,
		Size:        len(data),
		CreatedAt:   time.Now().UTC(),
	}
}

// ValidID reports whether id has the shape NewRecord produces.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ContentType returns the MIME type for an output format.
func ContentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "json":
		return "application/json"
	case "html":
		return "text/html; charset=utf-8"
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// Store is the interface for record storage backends.
type Store interface {
	// Get returns the record with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores rec, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}
