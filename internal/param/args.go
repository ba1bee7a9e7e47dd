package param

import "fmt"

// Args holds the values bound to a command's parameters, in declared order.
// Accessors panic on an unknown name or a type mismatch: both are
// programming errors in the command, not user input.
type Args struct {
	params []Param
	values []any
	index  map[string]int
	next   int
}

func newArgs(params []Param, values []any) *Args {
	index := make(map[string]int, len(params))
	for i, p := range params {
		index[p.Name()] = i
	}
	return &Args{params: params, values: values, index: index}
}

// Len returns the number of values.
func (a *Args) Len() int {
	return len(a.values)
}

// Values returns every value in declared order.
func (a *Args) Values() []any {
	return append([]any(nil), a.values...)
}

// Map returns the values keyed by parameter name.
func (a *Args) Map() map[string]any {
	m := make(map[string]any, len(a.values))
	for i, p := range a.params {
		m[p.Name()] = a.values[i]
	}
	return m
}

// Get returns the value bound to name.
func (a *Args) Get(name string) (any, bool) {
	i, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return a.values[i], true
}

// Value returns the value of name as T.
func Value[T any](a *Args, name string) T {
	raw, ok := a.Get(name)
	if !ok {
		panic(fmt.Sprintf("param: no parameter named '%s'", name))
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("param: '%s' holds %T, not %T", name, raw, zero))
	}
	return v
}

func (a *Args) String(name string) string { return Value[string](a, name) }
func (a *Args) Int(name string) int       { return Value[int](a, name) }
func (a *Args) Float(name string) float64 { return Value[float64](a, name) }
func (a *Args) Bool(name string) bool     { return Value[bool](a, name) }
func (a *Args) Entry(name string) Entry   { return Value[Entry](a, name) }

// Pop returns the values one by one in declared order.
func (a *Args) Pop() any {
	if a.next >= len(a.values) {
		panic("param: no more arguments")
	}
	v := a.values[a.next]
	a.next++
	return v
}
