package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/tasks/internal/model"
)

func sampleList(t *testing.T) *model.List {
	t.Helper()
	half, err := model.NewProgress(0.4)
	if err != nil {
		t.Fatal(err)
	}
	due, err := model.NewDate(2025, time.January, 31)
	if err != nil {
		t.Fatal(err)
	}
	l := model.NewList()
	l.Add(model.NewItem("Buy milk"))
	walk := model.NewItem("Walk dog").WithDeadline(due)
	walk.SetProgress(half)
	l.Add(walk)
	done := model.NewItem("")
	done.SetProgress(model.ProgressOne)
	l.Add(done)
	return l
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	original := sampleList(t)

	if err := Save(original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want, got := original.Items(), loaded.Items()
	if len(got) != len(want) {
		t.Fatalf("items count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveRejectsDeadlineThatWouldNotLoad(t *testing.T) {
	tests := []struct {
		name string
		due  model.Date
	}{
		{name: "zero date", due: model.Date{}},
		{name: "five-digit year", due: model.DateOf(time.Date(12000, time.January, 1, 0, 0, 0, 0, time.UTC))},
		{name: "year before 1", due: model.DateOf(time.Date(-1, time.November, 30, 0, 0, 0, 0, time.UTC))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "db.json")
			if err := Save(sampleList(t), path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			before, _ := os.ReadFile(path)

			l := sampleList(t)
			l.Add(model.NewItem("bad").WithDeadline(tt.due))
			err := Save(l, path)
			if !errors.Is(err, model.ErrInvalidDate) {
				t.Fatalf("Save error = %v, want ErrInvalidDate", err)
			}
			after, _ := os.ReadFile(path)
			if string(after) != string(before) {
				t.Error("rejected save modified the file")
			}
			if _, err := Load(path); err != nil {
				t.Errorf("file no longer loads: %v", err)
			}
		})
	}
}

func TestSaveKeepsExistingFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "db.json")
	if err := Save(sampleList(t), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o644 {
		t.Fatalf("new file mode = %v, want 0644", fi.Mode().Perm())
	}
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Save(sampleList(t), path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	fi, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode after save = %v, want 0600", fi.Mode().Perm())
	}
}

func TestSaveAndLoadEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := Save(model.NewList(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"items": []`) {
		t.Errorf("empty list should persist as an empty array, got %s", b)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestLoadMissingFileCreatesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")

	l, err := Load(path)
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("first Load Len() = %d, want 0", l.Len())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}

	l, err = Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("second Load Len() = %d, want 0", l.Len())
	}
}

func TestEncodeShape(t *testing.T) {
	b, err := Encode(sampleList(t))
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{
		`"items": [`,
		`"status": "Todo"`,
		`"desc": "Buy milk"`,
		`"deadline": null`,
		`"deadline": "2025-01-31"`,
		`"progress": 0.4`,
		`"status": "Underway"`,
		`"status": "Complete"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded document missing %s:\n%s", want, s)
		}
	}
	if strings.Index(s, "Buy milk") > strings.Index(s, "Walk dog") {
		t.Error("array order not preserved")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPaths []string
	}{
		{name: "not json", input: `{"items": [`},
		{name: "bare array", input: `[]`},
		{name: "missing items", input: `{}`},
		{
			name:      "progress above one",
			input:     `{"items":[{"status":"Complete","desc":"x","deadline":null,"progress":1.5}]}`,
			wantPaths: []string{"items[0].progress"},
		},
		{
			name:      "unknown status",
			input:     `{"items":[{"status":"Done","desc":"x","deadline":null,"progress":1}]}`,
			wantPaths: []string{"items[0].status"},
		},
		{
			name:  "bad date",
			input: `{"items":[{"status":"Todo","desc":"x","deadline":"31-01-2025","progress":0}]}`,
		},
		{
			name:  "status disagrees with progress",
			input: `{"items":[{"status":"Todo","desc":"x","deadline":null,"progress":0.5}]}`,
		},
		{
			name:  "extra field",
			input: `{"items":[{"status":"Todo","desc":"x","deadline":null,"progress":0,"id":1}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Decode error = %v, want ErrMalformed", err)
			}
			if len(tt.wantPaths) == 0 {
				return
			}
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("error %v is not a *SchemaError", err)
			}
			for _, p := range tt.wantPaths {
				found := false
				for _, v := range se.Violations {
					if v.Path == p {
						found = true
					}
				}
				if !found {
					t.Errorf("no violation at %s in %v", p, se.Violations)
				}
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrMalformed) {
		t.Errorf("Load error = %v, want ErrMalformed", err)
	}
}

func TestSaveUnwritableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	if err := Save(model.NewList(), filepath.Join(dir, "db.json")); err == nil {
		t.Error("Save into read-only directory succeeded")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	for i := 0; i < 3; i++ {
		if err := Save(sampleList(t), path); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only db.json", names)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"/items":             "items",
		"/items/2/progress":  "items[2].progress",
		"#/items/0/deadline": "items[0].deadline",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", in, got, want)
		}
	}
}
