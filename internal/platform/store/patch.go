package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Patch is a partial record: the JSON fields supplied by the caller. Update
// replaces each named top-level field and leaves the rest untouched.
type Patch map[string]json.RawMessage

// managedFields are owned by the collection and never taken from a patch.
var managedFields = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
}

// PatchOf encodes Go values into a Patch.
func PatchOf(fields map[string]any) (Patch, error) {
	p := make(Patch, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %s: %w", k, err)
		}
		p[k] = raw
	}
	return p, nil
}

// MustPatch is PatchOf for literals known to encode.
func MustPatch(fields map[string]any) Patch {
	p, err := PatchOf(fields)
	if err != nil {
		panic(err)
	}
	return p
}

// merge overlays patch onto rec. Field names must match the record's JSON
// names exactly; unknown names and values of the wrong type are reported as
// validation errors.
func merge[E any](rec E, patch Patch) (E, error) {
	var zero E
	known := jsonFields(reflect.TypeOf(rec))
	for k := range patch {
		if managedFields[k] {
			continue
		}
		if !known[k] {
			return zero, &ValidationError{Field: k, Reason: "unknown field"}
		}
	}
	base, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encode record: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return zero, fmt.Errorf("decode record: %w", err)
	}
	for k, v := range patch {
		if managedFields[k] {
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, fmt.Errorf("encode merged record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()
	var out E
	if err := dec.Decode(&out); err != nil {
		return zero, &ValidationError{Reason: err.Error()}
	}
	return out, nil
}

var fieldCache sync.Map // reflect.Type -> map[string]bool

// jsonFields returns the top-level JSON names of struct type t, including
// omitempty fields and fields promoted from embedded structs.
func jsonFields(t reflect.Type) map[string]bool {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]bool)
	}
	names := map[string]bool{}
	collectFields(t, names)
	fieldCache.Store(t, names)
	return names
}

func collectFields(t reflect.Type, names map[string]bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			collectFields(f.Type, names)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names[name] = true
	}
}
