package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
	"github.com/Babdus/protolanguage-v2/pkg/httputil"
	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// StdinSource is the source name that makes LoadTree read from stdin.
const StdinSource = "-"

// maxDocumentSize limits how much of a remote or piped document is read.
const maxDocumentSize = 64 << 20

// Stdin is the reader used for StdinSource. Tests replace it.
var Stdin io.Reader = os.Stdin

// httpClient fetches remote tree documents.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// fetchAttempts and fetchRetryDelay bound retries of transient fetch failures.
var (
	fetchAttempts   = 3
	fetchRetryDelay = time.Second
)

type node struct {
	Name     string        `json:"name"`
	Distance float64       `json:"distance,omitempty"`
	Meta     tree.Metadata `json:"meta,omitempty"`
	Children []*node       `json:"children,omitempty"`
}

// ReadJSON decodes a JSON tree from r.
//
// ReadJSON returns a DATA_UNAVAILABLE error if the JSON is malformed and a
// MALFORMED_NODE error if the decoded tree fails [tree.Validate].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Node, error) {
	var data node
	if err := json.NewDecoder(io.LimitReader(r, maxDocumentSize)).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "decode tree")
	}

	root := toTree(&data)
	if err := tree.Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

func toTree(n *node) *tree.Node {
	if n == nil {
		return nil
	}
	out := &tree.Node{Name: n.Name, Distance: n.Distance, Meta: n.Meta}
	if len(n.Children) > 0 {
		out.Children = make([]*tree.Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = toTree(c)
		}
	}
	return out
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// LoadTree reads, decodes and validates the tree at src, which is a file
// path, StdinSource, or an http(s) URL. Remote fetches are retried on
// network errors and 5xx responses.
func LoadTree(ctx context.Context, src string) (*tree.Node, error) {
	switch {
	case src == "":
		return nil, errors.New(errors.ErrCodeDataUnavailable, "no tree source given")
	case src == StdinSource:
		return ReadJSON(Stdin)
	case errors.IsURL(src):
		return fetchTree(ctx, src)
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ImportJSON(src)
	}
}

func fetchTree(ctx context.Context, url string) (*tree.Node, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	var body []byte
	err := httputil.Retry(ctx, fetchAttempts, fetchRetryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return httputil.Retryable(fmt.Errorf("%w: %v", httputil.ErrNetwork, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode >= 500:
			return httputil.Retryable(fmt.Errorf("%w: status %d", httputil.ErrNetwork, resp.StatusCode))
		default:
			return fmt.Errorf("%w: status %d", httputil.ErrNetwork, resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "fetch %s", url)
	}
	return ReadJSON(bytes.NewReader(body))
}
