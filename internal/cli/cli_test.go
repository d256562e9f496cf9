package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
	treeio "github.com/Babdus/protolanguage-v2/pkg/io"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
)

const sampleTree = `{"name":"root","children":[
  {"name":"X","children":[{"name":"ka"},{"name":"hy"}]},
  {"name":"de"}
]}`

const fiveTaxa = `,a,b,c,d,e
a,0,5,9,9,8
b,5,0,10,10,9
c,9,10,0,8,7
d,9,10,8,0,3
e,8,9,7,3,0
`

// isolate points config and cache lookups at a temp dir and captures
// status output.
func isolate(t *testing.T) (dir string, status *bytes.Buffer) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("HOME", dir)
	t.Setenv("DENDRO_REDIS_ADDR", "")
	t.Setenv("DENDRO_MONGO_URI", "")

	status = &bytes.Buffer{}
	out = status
	t.Cleanup(func() { out = os.Stdout })
	return dir, status
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir, status := isolate(t)
	input := writeFile(t, filepath.Join(dir, "langs.json"), sampleTree)
	base := filepath.Join(dir, "out", "langs")
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "render", input, "--style", "arc", "-f", "svg,json", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg starts with %.20q", svg)
	}
	if n := bytes.Count(svg, []byte(`class="link"`)); n != 4 {
		t.Errorf("svg has %d links, want 4", n)
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var export struct {
		LinkStyle string `json:"link_style"`
		Nodes     []any  `json:"nodes"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatal(err)
	}
	if export.LinkStyle != "arc" || len(export.Nodes) != 5 {
		t.Errorf("json export: style %q, %d nodes", export.LinkStyle, len(export.Nodes))
	}

	if !strings.Contains(status.String(), base+".svg") {
		t.Errorf("status output does not list the svg: %q", status.String())
	}
}

func TestRenderCommandUsesConfig(t *testing.T) {
	dir, _ := isolate(t)
	input := writeFile(t, filepath.Join(dir, "t.json"), sampleTree)
	cfg := writeFile(t, filepath.Join(dir, "dendro.toml"), `
[render]
link_style = "arc"
radius = 150
formats = ["json"]

[cache]
backend = "none"
`)
	output := filepath.Join(dir, "t.out.json")

	if _, err := execute(t, "--config", cfg, "render", input, "-o", output); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var export struct {
		LinkStyle string  `json:"link_style"`
		Radius    float64 `json:"radius"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatal(err)
	}
	if export.LinkStyle != "arc" || export.Radius != 150 {
		t.Errorf("config not applied: %+v", export)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir, _ := isolate(t)
	good := writeFile(t, filepath.Join(dir, "good.json"), sampleTree)
	bad := writeFile(t, filepath.Join(dir, "bad.json"), `{"name":"root","children":[{"name":""}]}`)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown style", []string{"render", good, "--style", "curly"}, errors.ErrCodeInvalidLinkStyle},
		{"unknown format", []string{"render", good, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"missing file", []string{"render", filepath.Join(dir, "nope.json")}, errors.ErrCodeDataUnavailable},
		{"malformed node", []string{"render", bad, "-o", filepath.Join(dir, "bad.svg")}, errors.ErrCodeMalformedNode},
		{"overwrite input", []string{"render", good, "-f", "json"}, errors.ErrCodeInvalidInput},
		{"stdout with two formats", []string{"render", good, "-f", "svg,json", "-o", "-"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBuildCommand(t *testing.T) {
	dir, status := isolate(t)
	input := writeFile(t, filepath.Join(dir, "ldm.csv"), fiveTaxa)
	output := filepath.Join(dir, "tree.json")

	if _, err := execute(t, "build", input, "-o", output); err != nil {
		t.Fatalf("build: %v", err)
	}

	root, err := treeio.ImportJSON(output)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(root.Leaves()); got != 5 {
		t.Errorf("leaves = %d, want 5", got)
	}
	if root.Count() != 9 {
		t.Errorf("nodes = %d, want 9", root.Count())
	}
	if !strings.Contains(status.String(), "Built tree") {
		t.Errorf("status = %q", status.String())
	}
}

func TestBuildCommandBadMatrix(t *testing.T) {
	dir, _ := isolate(t)
	input := writeFile(t, filepath.Join(dir, "bad.csv"), ",a,b\na,0,1\nb,2,0\n")

	_, err := execute(t, "build", input, "-o", filepath.Join(dir, "t.json"))
	if !errors.Is(err, errors.ErrCodeInvalidMatrix) {
		t.Errorf("error = %v, want INVALID_MATRIX", err)
	}
}

func TestInspectTable(t *testing.T) {
	dir, status := isolate(t)
	input := writeFile(t, filepath.Join(dir, "t.json"), sampleTree)

	if _, err := execute(t, "inspect", input, "--table", "--radius", "100"); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	got := status.String()
	for _, want := range []string{"Name", "Angle", "root", "ka", "hy", "de", "start", "end"} {
		if !strings.Contains(got, want) {
			t.Errorf("table does not contain %q:\n%s", want, got)
		}
	}
}

func TestCachePath(t *testing.T) {
	dir, _ := isolate(t)

	stdout, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(stdout) != want {
		t.Errorf("cache path = %q, want %q", stdout, want)
	}
}

func TestCacheClear(t *testing.T) {
	dir, status := isolate(t)
	input := writeFile(t, filepath.Join(dir, "t.json"), sampleTree)
	if _, err := execute(t, "render", input, "-o", filepath.Join(dir, "t.svg")); err != nil {
		t.Fatal(err)
	}
	status.Reset()

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "Cleared 2 cached entries") {
		t.Errorf("status = %q", status.String())
	}
}

func testScene(t *testing.T) radial.Scene {
	t.Helper()
	sc, err := inspectScene(context.Background(), writeFile(t, filepath.Join(t.TempDir(), "t.json"), sampleTree), inspectOpts{
		style:  "arc",
		radius: 100,
	})
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestNodeListModelNavigation(t *testing.T) {
	m := NewNodeListModel(testScene(t))
	m.Height = 2

	press := func(key string) {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		m = next.(NodeListModel)
	}

	press("k")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	press("j")
	press("j")
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("cursor %d offset %d, want 2 and 1", m.Cursor, m.Offset)
	}
	for range 10 {
		press("j")
	}
	if m.Cursor != len(m.Scene.Nodes)-1 {
		t.Errorf("cursor = %d, want last row", m.Cursor)
	}
}

func TestNodeListModelShowPath(t *testing.T) {
	m := NewNodeListModel(testScene(t))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(NodeListModel)
	if !m.ShowPath {
		t.Fatal("enter did not toggle the path view")
	}
	if view := m.View(); !strings.Contains(view, "no incoming link") {
		t.Errorf("root view should say it has no link:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = next.(NodeListModel)
	view := m.View()
	if !strings.Contains(view, "root → X") || !strings.Contains(view, "M0,0A0,0 0 0,0") {
		t.Errorf("view does not show the arc link path:\n%s", view)
	}
}

func TestNodeListModelQuit(t *testing.T) {
	m := NewNodeListModel(testScene(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestNewStore(t *testing.T) {
	c := New(io.Discard, LogInfo)

	s, kind, err := c.newStore(context.Background(), "")
	if err != nil || kind != "memory" {
		t.Fatalf("default store: kind %q, err %v", kind, err)
	}
	s.Close()

	dir := t.TempDir()
	s, kind, err = c.newStore(context.Background(), dir)
	if err != nil || kind != "file:"+dir {
		t.Fatalf("file store: kind %q, err %v", kind, err)
	}
	s.Close()
}
