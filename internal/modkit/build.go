package modkit

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Overrides []any
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:      c.name,
		Overrides: append([]any(nil), c.overrides...),
	}
}

// Override returns the last injected value implementing T, if any
func Override[T any](b Built) (T, bool) {
	for i := len(b.Overrides) - 1; i >= 0; i-- {
		if v, ok := b.Overrides[i].(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
