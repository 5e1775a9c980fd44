package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Fixture pairs a payload with the JSON document it should render to.
type Fixture struct {
	Name     string
	Payload  string
	Expected json.RawMessage
}

// LoadFixtures reads every <name>.hex under testdata/dir together with its
// <name>.json, sorted by name.
func LoadFixtures(t *testing.T, dir string) []Fixture {
	t.Helper()
	root := locateTestdata(t, dir)
	matches, err := filepath.Glob(filepath.Join(root, "*.hex"))
	if err != nil {
		t.Fatalf("glob %s: %v", root, err)
	}
	if len(matches) == 0 {
		t.Fatalf("no fixtures in %s", root)
	}
	sort.Strings(matches)
	fixtures := make([]Fixture, 0, len(matches))
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), ".hex")
		fx := Fixture{Name: name, Payload: LoadHex(t, filepath.Join(dir, name+".hex"))}
		LoadJSON(t, filepath.Join(dir, name+".json"), &fx.Expected)
		fixtures = append(fixtures, fx)
	}
	return fixtures
}

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns a payload from testdata with surrounding whitespace removed.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	return strings.TrimSpace(string(readTestdata(t, rel)))
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	data, err := os.ReadFile(locateTestdata(t, rel))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return data
}

func locateTestdata(t *testing.T, rel string) string {
	t.Helper()
	for _, base := range []string{"testdata", filepath.Join("..", "testdata"), filepath.Join("..", "..", "testdata")} {
		path := filepath.Join(base, rel)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return ""
}
