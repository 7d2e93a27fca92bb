package invoke

import (
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// SelectAll selects the whole response.
const SelectAll = "*"

type selectKind int

const (
	selectDefault selectKind = iota
	selectAll
	selectParam
	selectField
)

type selector struct {
	kind selectKind
	name string // field or parameter name
	path string // gjson path below the field
}

// parseSelector validates expr against the operation before dispatch.
func parseSelector(spec Spec, fields []string, expr string) (selector, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		if spec.Output == "" {
			return selector{kind: selectDefault}, nil
		}
		return selector{kind: selectField, name: spec.Output}, nil
	case expr == SelectAll:
		return selector{kind: selectAll}, nil
	case strings.HasPrefix(expr, "^"):
		name := strings.TrimPrefix(expr, "^")
		if _, ok := spec.Param(name); !ok {
			return selector{}, &ValidationError{Operation: spec.Name, Reason: "select: unknown parameter " + name}
		}
		return selector{kind: selectParam, name: name}, nil
	}

	name, path, _ := strings.Cut(expr, ".")
	for _, f := range fields {
		if f == name {
			return selector{kind: selectField, name: name, path: path}, nil
		}
	}
	return selector{}, &ValidationError{
		Operation: spec.Name,
		Reason:    "select: unknown response field " + name + " (available: " + strings.Join(fields, ", ") + ")",
	}
}

// project applies the selector. The boolean is false when there is nothing to emit.
func (s selector) project(out any, values Values) (any, bool, error) {
	switch s.kind {
	case selectAll:
		return out, true, nil
	case selectParam:
		v, ok := values[s.name]
		return v, ok, nil
	case selectField:
		rv := reflect.ValueOf(out)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, false, nil
			}
			rv = rv.Elem()
		}
		fv := rv.FieldByName(s.name)
		if !fv.IsValid() || isNilValue(fv) {
			return nil, false, nil
		}
		if s.path == "" {
			return fv.Interface(), true, nil
		}
		data, err := json.Marshal(fv.Interface())
		if err != nil {
			return nil, false, err
		}
		r := gjson.GetBytes(data, s.path)
		if !r.Exists() {
			return nil, false, nil
		}
		return r.Value(), true, nil
	}
	return nil, false, nil
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// responseFields lists the selectable top-level fields of a response struct.
func responseFields(t reflect.Type) []string {
	var fields []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous || f.Name == "ResultMetadata" {
			continue
		}
		fields = append(fields, f.Name)
	}
	return fields
}
