package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// Extra holds JSON keys a model does not declare, keyed by name, so that
// fields added by newer servers survive a decode/encode cycle.
type Extra map[string]json.RawMessage

// Get returns the raw JSON stored under key.
func (e Extra) Get(key string) (json.RawMessage, bool) {
	raw, ok := e[key]
	return raw, ok
}

// Has reports whether key is present.
func (e Extra) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Keys returns the stored keys in sorted order.
func (e Extra) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores v under key, encoding it as JSON.
func (e *Extra) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if *e == nil {
		*e = make(Extra)
	}
	(*e)[key] = raw
	return nil
}

// Delete removes key.
func (e Extra) Delete(key string) {
	delete(e, key)
}

// Decode unmarshals the value stored under key into v.
func (e Extra) Decode(key string, v any) error {
	raw, ok := e[key]
	if !ok {
		return fmt.Errorf("models: no extra key %q", key)
	}
	return json.Unmarshal(raw, v)
}

var knownKeysCache sync.Map // reflect.Type -> map[string]struct{}

// knownKeys lists the JSON object keys declared by struct type t.
func knownKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := knownKeysCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}

	knownKeysCache.Store(t, keys)
	return keys
}

// marshalWithExtra encodes v and merges extra into the resulting object.
// Declared fields win over extra keys of the same name.
func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}

// unmarshalWithExtra resets and decodes v (a pointer to a struct) from data,
// then collects the undeclared top-level keys into extra.
func unmarshalWithExtra(data []byte, v any, extra *Extra) error {
	rv := reflect.ValueOf(v).Elem()
	rv.SetZero()
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	known := knownKeys(rv.Type())
	var found Extra
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if _, ok := known[key.String()]; ok {
			return true
		}
		if found == nil {
			found = make(Extra)
		}
		found[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	*extra = found
	return nil
}
