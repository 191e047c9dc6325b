package dao

// Parameter narrows a List call, e.g. by process state.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a list filter; a single value stays scalar, more
// than one becomes a slice.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
