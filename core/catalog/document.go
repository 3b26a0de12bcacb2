package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/utils"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// versionField is the optional top-level key carrying the document schema version.
const versionField = "version"

// Record is one decoded object from a rules document.
// Field names are case-folded at decode time, so lookups are case-insensitive.
type Record map[string]any

// Document is a decoded rules document, before validation.
type Document struct {
	// Name is the resource name the document was read from.
	Name string
	// Version is the top-level "version" string, empty when absent.
	Version string

	root Record
	fold cases.Caser
}

// Decode parses raw bytes into a Document.
// YAML is used for .yaml/.yml names, JSON otherwise. The top-level value must be an object.
func Decode(name string, data []byte) (*Document, error) {
	var raw any
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: trailing data after top-level value", ErrMalformed, name)
		}
	}

	fold := cases.Fold()
	normalized, err := normalize(fold, raw, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	root, ok := normalized.(Record)
	if !ok {
		return nil, fmt.Errorf("%w: %s: top-level value must be an object", ErrMalformed, name)
	}

	doc := &Document{Name: name, root: root, fold: fold}
	if v, present := root[versionField]; present {
		version, ok := utils.String(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %q must be a string", ErrMalformed, name, versionField)
		}
		doc.Version = version
	}
	return doc, nil
}

// Collection returns the records stored in the top-level array named key.
func (d *Document) Collection(key string) ([]Record, error) {
	raw, ok := d.root[d.fold.String(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing top-level array %q", ErrMalformed, d.Name, key)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %q must be an array", ErrMalformed, d.Name, key)
	}
	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, ok := item.(Record)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %s[%d] must be an object", ErrMalformed, d.Name, key, i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// normalize folds every object key and converts nested objects to Record.
func normalize(fold cases.Caser, v any, at string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(Record, len(t))
		for k, val := range t {
			if err := put(fold, out, k, val, at); err != nil {
				return nil, err
			}
		}
		return out, nil
	case map[any]any:
		out := make(Record, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%s: non-string key %v", describe(at), k)
			}
			if err := put(fold, out, ks, val, at); err != nil {
				return nil, err
			}
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			n, err := normalize(fold, item, fmt.Sprintf("%s[%d]", at, i))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

func put(fold cases.Caser, out Record, key string, val any, at string) error {
	folded := fold.String(key)
	if _, dup := out[folded]; dup {
		return fmt.Errorf("%s: field %q given twice", describe(at), key)
	}
	child := key
	if at != "" {
		child = at + "." + key
	}
	n, err := normalize(fold, val, child)
	if err != nil {
		return err
	}
	out[folded] = n
	return nil
}

func describe(at string) string {
	if at == "" {
		return "document"
	}
	return at
}

// key folds a field name the same way Decode folds document keys.
// Field names used by the validators are ASCII, so lowercasing matches full case folding.
func key(field string) string {
	return strings.ToLower(field)
}

// Has reports whether the field is present and not null, whatever its type.
func (r Record) Has(field string) bool {
	v, ok := r[key(field)]
	return ok && v != nil
}

// Text returns a trimmed string field.
func (r Record) Text(field string) (string, bool) {
	return utils.String(r[key(field)])
}

// Integer returns an integral numeric field.
func (r Record) Integer(field string) (int, bool) {
	return utils.Int(r[key(field)])
}

// Flag returns a boolean field.
func (r Record) Flag(field string) (bool, bool) {
	return utils.Bool(r[key(field)])
}

// Strings returns a list-of-strings field.
func (r Record) Strings(field string) ([]string, bool) {
	return utils.Strings(r[key(field)])
}

// Object returns a nested object field.
func (r Record) Object(field string) (Record, bool) {
	rec, ok := r[key(field)].(Record)
	return rec, ok
}

// List returns a list-of-objects field. It fails if any element is not an object.
func (r Record) List(field string) ([]Record, bool) {
	items, ok := r[key(field)].([]any)
	if !ok {
		return nil, false
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		rec, ok := item.(Record)
		if !ok {
			return nil, false
		}
		out = append(out, rec)
	}
	return out, true
}
