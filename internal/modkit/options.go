package modkit

// Option mutates build configuration for a module
type Option func(*buildCfg)

// buildCfg is internal wiring state for options
type buildCfg struct {
	name      string
	overrides []any
}

// WithName sets a module name used in logs
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPorts injects an adapter that replaces the module's default for the
// port it implements; the concrete interface is owned by the consuming module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.overrides = append(c.overrides, p) }
}
