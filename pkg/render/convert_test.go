package render

import (
	"testing"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

func TestConvert_MissingBinary(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "rsvg-convert-does-not-exist"
	defer func() { rsvgBinary = old }()

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	for name, fn := range map[string]func() ([]byte, error){
		"pdf": func() ([]byte, error) { return ToPDF([]byte("<svg/>")) },
		"png": func() ([]byte, error) { return ToPNG([]byte("<svg/>"), 2) },
	} {
		if _, err := fn(); !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("%s: error = %v, want UNSUPPORTED", name, err)
		}
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><circle r="4" cx="5" cy="5"/></svg>`)
	out, err := ToPNG(svg, 1)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if len(out) < 8 || string(out[1:4]) != "PNG" {
		t.Errorf("output is not a PNG")
	}
}
