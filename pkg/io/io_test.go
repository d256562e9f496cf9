package io

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

const twoLeaves = `{"name":"root","children":[{"name":"leaf1","children":[]},{"name":"leaf2","children":[]}]}`

func TestReadJSON(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(twoLeaves))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if root.Name != "root" || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
	for _, c := range root.Children {
		if !c.IsLeaf() {
			t.Errorf("%s should be a leaf", c.Name)
		}
	}
}

func TestReadJSONDistanceAndMeta(t *testing.T) {
	doc := `{"name":"r","children":[{"name":"ka","distance":0.5,"meta":{"code":"ka"}}]}`
	root, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	ka := root.Children[0]
	if ka.Distance != 0.5 {
		t.Errorf("Distance = %v, want 0.5", ka.Distance)
	}
	if ka.Meta["code"] != "ka" {
		t.Errorf("Meta = %v", ka.Meta)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"syntax error", `{"name":`, errors.ErrCodeDataUnavailable},
		{"wrong type", `{"name":"r","children":"nope"}`, errors.ErrCodeDataUnavailable},
		{"missing name", `{"children":[]}`, errors.ErrCodeMalformedNode},
		{"missing child name", `{"name":"r","children":[{"children":[]}]}`, errors.ErrCodeMalformedNode},
		{"null child", `{"name":"r","children":[null]}`, errors.ErrCodeMalformedNode},
		{"negative distance", `{"name":"r","children":[{"name":"a","distance":-1}]}`, errors.ErrCodeMalformedNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("ReadJSON() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	orig := &tree.Node{Name: "root", Children: []*tree.Node{
		{Name: "a", Distance: 1.5, Children: []*tree.Node{{Name: "a1", Distance: 0.5}}},
		{Name: "b", Distance: 2, Meta: tree.Metadata{"color": "red"}},
	}}

	path := filepath.Join(t.TempDir(), "tree.json")
	if err := ExportJSON(orig, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	a, b := mustMarshal(t, orig), mustMarshal(t, got)
	if !bytes.Equal(a, b) {
		t.Errorf("round trip mismatch:\n%s\n%s", a, b)
	}
}

func mustMarshal(t *testing.T, n *tree.Node) []byte {
	t.Helper()
	data, err := MarshalJSON(n)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	return data
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeDataUnavailable) {
		t.Errorf("ImportJSON() error = %v, want DATA_UNAVAILABLE", err)
	}
}

func TestLoadTreeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte(twoLeaves), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := LoadTree(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if root.Count() != 3 {
		t.Errorf("Count() = %d, want 3", root.Count())
	}
}

func TestLoadTreeStdin(t *testing.T) {
	old := Stdin
	Stdin = strings.NewReader(twoLeaves)
	defer func() { Stdin = old }()

	root, err := LoadTree(context.Background(), StdinSource)
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if len(root.Leaves()) != 2 {
		t.Errorf("Leaves() = %d, want 2", len(root.Leaves()))
	}
}

func TestLoadTreeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tree.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(twoLeaves))
	}))
	defer srv.Close()

	root, err := LoadTree(context.Background(), srv.URL+"/tree.json")
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if root.Name != "root" {
		t.Errorf("Name = %q, want root", root.Name)
	}

	_, err = LoadTree(context.Background(), srv.URL+"/missing.json")
	if !errors.Is(err, errors.ErrCodeDataUnavailable) {
		t.Errorf("LoadTree(404) error = %v, want DATA_UNAVAILABLE", err)
	}
}

func TestLoadTreeURLRetries(t *testing.T) {
	oldDelay := fetchRetryDelay
	fetchRetryDelay = time.Millisecond
	defer func() { fetchRetryDelay = oldDelay }()

	tests := []struct {
		name      string
		statuses  []int
		wantErr   bool
		wantCalls int32
	}{
		{"5xx then ok", []int{http.StatusBadGateway}, false, 2},
		{"5xx exhausted", []int{500, 500, 500, 500}, true, 3},
		{"4xx not retried", []int{http.StatusForbidden}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(calls.Add(1))
				if n <= len(tt.statuses) {
					w.WriteHeader(tt.statuses[n-1])
					return
				}
				w.Write([]byte(twoLeaves))
			}))
			defer srv.Close()

			_, err := LoadTree(context.Background(), srv.URL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadTree error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeDataUnavailable) {
				t.Errorf("error = %v, want DATA_UNAVAILABLE", err)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestLoadTreeEmptySource(t *testing.T) {
	_, err := LoadTree(context.Background(), "")
	if !errors.Is(err, errors.ErrCodeDataUnavailable) {
		t.Errorf("LoadTree(\"\") error = %v, want DATA_UNAVAILABLE", err)
	}
}
