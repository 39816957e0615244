package parser_test

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/tntc/internal/parser"
)

var update = flag.Bool("update", false, "rewrite the .json files in testdata")

// TestGolden parses every testdata/*.tnt file and compares the module and
// its source map with the .json file next to it.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.tnt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test files in testdata")
	}
	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			mod, sm, perr := parser.Parse(string(src), file)
			if perr != nil {
				t.Fatalf("parse failed: %s", perr.Error())
			}
			got, err := json.MarshalIndent(map[string]any{"module": mod, "sourceMap": sm}, "", "  ")
			if err != nil {
				t.Fatal(err)
			}

			wantFile := strings.TrimSuffix(file, ".tnt") + ".json"
			if *update {
				if err := os.WriteFile(wantFile, append(got, '\n'), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(wantFile)
			if err != nil {
				t.Fatalf("missing %s, run with -update", wantFile)
			}

			var g, w any
			if err := json.Unmarshal(got, &g); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal(want, &w); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(g, w) {
				t.Errorf("output differs from %s:\n%s", wantFile, got)
			}
		})
	}
}
