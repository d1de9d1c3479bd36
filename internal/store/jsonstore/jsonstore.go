package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tasks/internal/model"
)

// JSON-backed storage. Single file, human-readable, whole-document rewrite.
// No locking: concurrent writers race and the last one wins.

// DefaultPath is used when no path is configured.
const DefaultPath = "db.json"

const schemaURL = "https://github.com/idilsaglam/tasks/schema.json"

//go:embed schema.json
var schemaJSON []byte

// ErrMalformed marks a file that exists but does not hold a valid document.
var ErrMalformed = errors.New("malformed todo file")

type document struct {
	Items []record `json:"items"`
}

type record struct {
	Status   model.Status `json:"status"`
	Desc     string       `json:"desc"`
	Deadline *string      `json:"deadline"`
	Progress float64      `json:"progress"`
}

// Load reads the list at path. A missing file is created empty and an
// empty list is returned; an empty file also loads as an empty list.
func Load(path string) (*model.List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := createEmpty(path); err != nil {
				return nil, err
			}
			return model.NewList(), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return model.NewList(), nil
	}
	return Decode(b)
}

// Decode parses and validates a document.
func Decode(b []byte) (*model.List, error) {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrMalformed, err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrMalformed, err)
	}
	l := model.NewList()
	for i, rec := range doc.Items {
		it, err := rec.item()
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d]: %v", ErrMalformed, i, err)
		}
		l.Add(it)
	}
	return l, nil
}

// Save overwrites path with the whole list. The data goes to a temp file
// in the same directory first and is renamed into place.
func Save(l *model.List, path string) error {
	b, err := Encode(l)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), fileMode(path)); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// fileMode keeps the permissions of an existing file at path.
func fileMode(path string) os.FileMode {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return 0o644
}

// Encode renders the list as an indented document with a trailing newline.
func Encode(l *model.List) ([]byte, error) {
	doc := document{Items: make([]record, 0, l.Len())}
	for i, it := range l.All() {
		rec, err := newRecord(it)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		doc.Items = append(doc.Items, rec)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

func createEmpty(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// newRecord refuses deadlines that would not load back, so Save never
// writes a file the next Load rejects.
func newRecord(it model.Item) (record, error) {
	rec := record{
		Status:   it.Status(),
		Desc:     it.Description(),
		Progress: it.Progress().Float(),
	}
	if d, ok := it.Deadline(); ok {
		if !d.Valid() {
			return record{}, fmt.Errorf("%w: deadline %04d-%02d-%02d", model.ErrInvalidDate, d.Year(), int(d.Month()), d.Day())
		}
		s := d.String()
		rec.Deadline = &s
	}
	return rec, nil
}

func (r record) item() (model.Item, error) {
	p, err := model.NewProgress(r.Progress)
	if err != nil {
		return model.Item{}, err
	}
	it := model.NewItem(r.Desc)
	it.SetProgress(p)
	if r.Deadline != nil {
		d, err := model.ParseISODate(*r.Deadline)
		if err != nil {
			return model.Item{}, err
		}
		it.SetDeadline(d)
	}
	if got := it.Status(); got != r.Status {
		return model.Item{}, fmt.Errorf("status %q disagrees with progress %v (want %q)", r.Status, r.Progress, got)
	}
	return it, nil
}

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Violations []Violation
}

// Violation is a single schema failure at a JSON path.
type Violation struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Path == "" {
			parts = append(parts, v.Message)
			continue
		}
		parts = append(parts, v.Path+": "+v.Message)
	}
	return "schema: " + strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error { return ErrMalformed }

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

func validate(raw any) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	err = schema.Validate(raw)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	se := &SchemaError{}
	collectViolations(se, ve)
	return se
}

func collectViolations(se *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		se.Violations = append(se.Violations, Violation{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(se, cause)
	}
}

// jsonPointerToPath turns "/items/2/progress" into "items[2].progress".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if isIndex(part) {
			fmt.Fprintf(&b, "[%s]", part)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
