package invoke

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind is the value type of a parameter.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt32
	KindStrings
	KindTags
	KindFilters
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindStrings:
		return "strings"
	case KindTags:
		return "tags"
	case KindFilters:
		return "filters"
	default:
		return "string"
	}
}

// Requirement controls how a parameter is validated before dispatch.
type Requirement int

const (
	// Optional parameters are only sent when bound.
	Optional Requirement = iota
	// Mandatory parameters must be bound. An empty value is reported as a
	// warning and still sent.
	Mandatory
	// Identifying parameters must be bound and non-empty.
	Identifying
)

// Param declares one input of an operation. Name is the SDK input field name.
type Param struct {
	Name        string
	Kind        Kind
	Requirement Requirement
	Positional  bool
	Usage       string
}

// Flag returns the command-line flag name for the parameter.
func (p Param) Flag() string {
	return FlagName(p.Name)
}

// Required reports whether the parameter must be bound.
func (p Param) Required() bool {
	return p.Requirement != Optional
}

// Tag is a Key=Value pair bound to a tags parameter.
type Tag struct {
	Key   string
	Value string
}

// Filter is a Name=v1,v2 pair bound to a filters parameter.
type Filter struct {
	Name   string
	Values []string
}

// check verifies that v has the Go type expected for the parameter kind.
func (p Param) check(v any) error {
	var ok bool
	switch p.Kind {
	case KindString:
		_, ok = v.(string)
	case KindBool:
		_, ok = v.(bool)
	case KindInt32:
		_, ok = v.(int32)
	case KindStrings:
		_, ok = v.([]string)
	case KindTags:
		_, ok = v.([]Tag)
	case KindFilters:
		_, ok = v.([]Filter)
	}
	if !ok {
		return fmt.Errorf("expected a %s value, got %T", p.Kind, v)
	}
	return nil
}

// Parse converts command-line text into the typed value for the parameter.
func (p Param) Parse(raw []string) (any, error) {
	last := ""
	if len(raw) > 0 {
		last = raw[len(raw)-1]
	}
	switch p.Kind {
	case KindBool:
		if last == "" {
			return true, nil
		}
		return strconv.ParseBool(last)
	case KindInt32:
		n, err := strconv.ParseInt(last, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case KindStrings:
		var out []string
		for _, r := range raw {
			for _, s := range strings.Split(r, ",") {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out, nil
	case KindTags:
		return ParseTags(raw)
	case KindFilters:
		return ParseFilters(raw)
	default:
		return last, nil
	}
}

// ParseTags parses Key=Value pairs. A pair without '=' is a key with an empty value.
func ParseTags(raw []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(raw))
	for _, r := range raw {
		key, value, _ := strings.Cut(r, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid tag %q: key is empty", r)
		}
		tags = append(tags, Tag{Key: key, Value: value})
	}
	return tags, nil
}

// ParseFilters parses Name=v1,v2 filters.
func ParseFilters(raw []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(raw))
	for _, r := range raw {
		name, values, ok := strings.Cut(r, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid filter %q: expected Name=value[,value...]", r)
		}
		f := Filter{Name: name}
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				f.Values = append(f.Values, v)
			}
		}
		if len(f.Values) == 0 {
			return nil, fmt.Errorf("invalid filter %q: no values", r)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// FlagName converts an API name to kebab case, keeping acronyms together:
// DBSnapshotIdentifier becomes db-snapshot-identifier.
func FlagName(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
