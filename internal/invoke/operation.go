// Package invoke turns bound command inputs into exactly one SDK call and
// projects the response back to the caller.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// Spec is the declarative description of one remote operation.
type Spec struct {
	Name   string
	Short  string
	Impact Impact
	// Output is the response field returned when no selector is given.
	// Empty means the operation emits nothing by default.
	Output string
	Params []Param
	// RequireOneOf names parameters of which at least one must be bound
	// with a non-empty value.
	RequireOneOf []string
}

// Command returns the command name for the operation.
func (s Spec) Command() string {
	return FlagName(s.Name)
}

// Param finds a parameter by name.
func (s Spec) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Positional returns the parameter bound from the first argument, if any.
func (s Spec) Positional() (Param, bool) {
	for _, p := range s.Params {
		if p.Positional {
			return p, true
		}
	}
	return Param{}, false
}

// Values holds bound inputs keyed by parameter name. A key that is present
// is bound, even when its value is empty.
type Values map[string]any

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case []Tag:
		return len(x) == 0
	case []Filter:
		return len(x) == 0
	}
	return false
}

// Confirmer obtains consent for a gated operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Execution carries the bound inputs and output selection for one invocation.
type Execution struct {
	Values    Values
	Select    string
	Force     bool
	Threshold Impact
	Confirmer Confirmer
	Logger    *slog.Logger
}

// Result describes the outcome of one invocation.
type Result struct {
	ID        string
	Operation string
	Phase     Phase
	Request   any
	Response  any
	Output    any
	HasOutput bool
}

// Operation is one command-to-API mapping over a client of type C.
type Operation[C any] interface {
	Spec() Spec
	// Fields lists the selectable top-level response fields.
	Fields() []string
	Run(ctx context.Context, client C, exec *Execution) (*Result, error)
}

type definition[C, O, In, Out any] struct {
	spec   Spec
	fields []string
	call   func(C, context.Context, *In, ...func(*O)) (*Out, error)
}

// Define builds an operation from an SDK method expression such as
// rdsapi.DeleteDBProxyEndpoint. It panics when a parameter or the default
// output does not match the input and output types.
func Define[C, O, In, Out any](name string, call func(C, context.Context, *In, ...func(*O)) (*Out, error), spec Spec) Operation[C] {
	spec.Name = name
	inType := reflect.TypeOf((*In)(nil)).Elem()
	outType := reflect.TypeOf((*Out)(nil)).Elem()

	positional := 0
	for _, p := range spec.Params {
		if err := checkField(inType, p); err != nil {
			panic(fmt.Sprintf("invoke: %s: %v", name, err))
		}
		if p.Positional {
			positional++
		}
	}
	if positional > 1 {
		panic(fmt.Sprintf("invoke: %s: more than one positional parameter", name))
	}
	for _, n := range spec.RequireOneOf {
		if _, ok := spec.Param(n); !ok {
			panic(fmt.Sprintf("invoke: %s: RequireOneOf names unknown parameter %s", name, n))
		}
	}

	d := &definition[C, O, In, Out]{spec: spec, fields: responseFields(outType), call: call}
	if spec.Output != "" {
		if _, err := parseSelector(spec, d.fields, spec.Output); err != nil {
			panic(fmt.Sprintf("invoke: %s: default output: %v", name, err))
		}
	}
	return d
}

func (d *definition[C, O, In, Out]) Spec() Spec       { return d.spec }
func (d *definition[C, O, In, Out]) Fields() []string { return d.fields }

// Run executes the invocation state machine. A declined confirmation and a
// cancelled context both end with a nil error and no output.
func (d *definition[C, O, In, Out]) Run(ctx context.Context, client C, exec *Execution) (*Result, error) {
	if exec == nil {
		exec = &Execution{}
	}
	res := &Result{ID: uuid.NewString(), Operation: d.spec.Name}
	log := exec.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("op", d.spec.Name, "invocation", res.ID)
	advance := func(p Phase) {
		res.Phase = p
		log.Debug("invocation phase", "phase", p.String())
	}
	fail := func(err error) (*Result, error) {
		advance(PhaseFailed)
		return res, err
	}

	advance(PhaseInputsBound)
	if err := d.validate(exec.Values, log); err != nil {
		return fail(err)
	}
	sel, err := parseSelector(d.spec, d.fields, exec.Select)
	if err != nil {
		return fail(err)
	}

	if d.spec.Impact.Gated(exec.Threshold) && !exec.Force {
		if errors.Is(ctx.Err(), context.Canceled) {
			advance(PhaseCancelled)
			return res, nil
		}
		advance(PhaseConfirmationPending)
		if exec.Confirmer == nil {
			return fail(fmt.Errorf("%s: %w", d.spec.Name, ErrConfirmationRequired))
		}
		ok, err := exec.Confirmer.Confirm(ctx, d.confirmPrompt(exec.Values))
		if errors.Is(err, context.Canceled) {
			advance(PhaseCancelled)
			return res, nil
		}
		if err != nil {
			return fail(err)
		}
		if !ok {
			advance(PhaseConfirmationDeclined)
			return res, nil
		}
		advance(PhaseConfirmationGranted)
	}

	in := new(In)
	inValue := reflect.ValueOf(in).Elem()
	for _, p := range d.spec.Params {
		if v, ok := exec.Values[p.Name]; ok {
			assign(inValue, p, v)
		}
	}
	res.Request = in
	advance(PhaseRequestBuilt)

	if errors.Is(ctx.Err(), context.Canceled) {
		advance(PhaseCancelled)
		return res, nil
	}

	advance(PhaseDispatched)
	out, err := d.call(client, ctx, in)
	if errors.Is(ctx.Err(), context.Canceled) && (err == nil || errors.Is(err, context.Canceled)) {
		advance(PhaseCancelled)
		return res, nil
	}
	if err != nil {
		return fail(Translate(d.spec.Name, err))
	}

	res.Response = out
	output, has, err := sel.project(out, exec.Values)
	if err != nil {
		return fail(fmt.Errorf("%s: failed to select output: %w", d.spec.Name, err))
	}
	res.Output, res.HasOutput = output, has
	advance(PhaseCompleted)
	return res, nil
}

func (d *definition[C, O, In, Out]) validate(values Values, log *slog.Logger) error {
	for name := range values {
		if _, ok := d.spec.Param(name); !ok {
			return &ValidationError{Operation: d.spec.Name, Param: FlagName(name), Reason: "unknown parameter"}
		}
	}
	for _, p := range d.spec.Params {
		v, bound := values[p.Name]
		if bound {
			if err := p.check(v); err != nil {
				return &ValidationError{Operation: d.spec.Name, Param: p.Flag(), Reason: err.Error()}
			}
		}
		if !p.Required() {
			continue
		}
		if !bound {
			return &ValidationError{Operation: d.spec.Name, Param: p.Flag(), Reason: "missing required value"}
		}
		if isEmpty(v) {
			log.Warn(fmt.Sprintf("%s: parameter %s is mandatory but an empty value was supplied", d.spec.Name, p.Flag()))
			if p.Requirement == Identifying {
				return &ValidationError{Operation: d.spec.Name, Param: p.Flag(), Reason: "value must not be empty"}
			}
		}
	}
	if len(d.spec.RequireOneOf) > 0 {
		for _, name := range d.spec.RequireOneOf {
			if v, ok := values[name]; ok && !isEmpty(v) {
				return nil
			}
		}
		flags := make([]string, len(d.spec.RequireOneOf))
		for i, name := range d.spec.RequireOneOf {
			flags[i] = FlagName(name)
		}
		return &ValidationError{Operation: d.spec.Name, Reason: fmt.Sprintf("one of %v is required", flags)}
	}
	return nil
}

func (d *definition[C, O, In, Out]) confirmPrompt(values Values) string {
	target := ""
	for _, p := range d.spec.Params {
		if !p.Positional && p.Requirement != Identifying && !slices.Contains(d.spec.RequireOneOf, p.Name) {
			continue
		}
		if v, ok := values[p.Name]; ok && !isEmpty(v) {
			target = fmt.Sprint(v)
			break
		}
	}
	if target == "" {
		return fmt.Sprintf("Performing the operation %q. Continue?", d.spec.Name)
	}
	return fmt.Sprintf("Performing the operation %q on target %q. Continue?", d.spec.Name, target)
}
