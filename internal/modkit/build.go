package modkit

// Built is a plain struct with the fields modules care about
type Built struct {
	Name  string
	Ports any
}

// Build applies Option funcs and returns a plain struct; def is the name when none was set
func Build(def string, opts ...Option) Built {
	c := buildCfg{name: def}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return Built{Name: c.name, Ports: c.ports}
}

// Injected type asserts the ports passed through WithPorts
func Injected[T any](b Built) (T, bool) {
	v, ok := b.Ports.(T)
	return v, ok
}
