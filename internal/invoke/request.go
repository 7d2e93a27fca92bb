package invoke

import (
	"fmt"
	"reflect"
)

var (
	stringPtrType = reflect.TypeOf((*string)(nil))
	stringsType   = reflect.TypeOf([]string(nil))
)

// checkField verifies at definition time that the input struct has a field
// the parameter can be assigned to.
func checkField(in reflect.Type, p Param) error {
	f, ok := in.FieldByName(p.Name)
	if !ok || !f.IsExported() {
		return fmt.Errorf("input %s has no field %s", in.Name(), p.Name)
	}
	t := f.Type
	ok = false
	switch p.Kind {
	case KindString:
		ok = t == stringPtrType
	case KindBool:
		ok = t.Kind() == reflect.Bool || (t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Bool)
	case KindInt32:
		ok = t.Kind() == reflect.Int32 || (t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Int32)
	case KindStrings:
		ok = t == stringsType
	case KindTags:
		ok = isPairSlice(t, "Key", stringPtrType, "Value", stringPtrType)
	case KindFilters:
		ok = isPairSlice(t, "Name", stringPtrType, "Values", stringsType)
	}
	if !ok {
		return fmt.Errorf("field %s.%s has type %s, not usable for a %s parameter", in.Name(), p.Name, t, p.Kind)
	}
	return nil
}

func isPairSlice(t reflect.Type, first string, firstType reflect.Type, second string, secondType reflect.Type) bool {
	if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.Struct {
		return false
	}
	a, ok := t.Elem().FieldByName(first)
	if !ok || a.Type != firstType {
		return false
	}
	b, ok := t.Elem().FieldByName(second)
	return ok && b.Type == secondType
}

// assign sets the field named by p on the addressable struct value in.
func assign(in reflect.Value, p Param, v any) {
	f := in.FieldByName(p.Name)
	switch p.Kind {
	case KindString:
		s := v.(string)
		f.Set(reflect.ValueOf(&s))
	case KindBool:
		setScalar(f, reflect.ValueOf(v.(bool)))
	case KindInt32:
		setScalar(f, reflect.ValueOf(v.(int32)))
	case KindStrings:
		f.Set(reflect.ValueOf(append([]string(nil), v.([]string)...)))
	case KindTags:
		tags := v.([]Tag)
		slice := reflect.MakeSlice(f.Type(), 0, len(tags))
		for _, t := range tags {
			e := reflect.New(f.Type().Elem()).Elem()
			e.FieldByName("Key").Set(reflect.ValueOf(ptr(t.Key)))
			e.FieldByName("Value").Set(reflect.ValueOf(ptr(t.Value)))
			slice = reflect.Append(slice, e)
		}
		f.Set(slice)
	case KindFilters:
		filters := v.([]Filter)
		slice := reflect.MakeSlice(f.Type(), 0, len(filters))
		for _, flt := range filters {
			e := reflect.New(f.Type().Elem()).Elem()
			e.FieldByName("Name").Set(reflect.ValueOf(ptr(flt.Name)))
			e.FieldByName("Values").Set(reflect.ValueOf(append([]string(nil), flt.Values...)))
			slice = reflect.Append(slice, e)
		}
		f.Set(slice)
	}
}

// setScalar handles both plain and pointer fields.
func setScalar(f reflect.Value, v reflect.Value) {
	if f.Kind() == reflect.Pointer {
		p := reflect.New(f.Type().Elem())
		p.Elem().Set(v.Convert(f.Type().Elem()))
		f.Set(p)
		return
	}
	f.Set(v.Convert(f.Type()))
}

func ptr[T any](v T) *T { return &v }
