package module

type stubModule struct {
	name  string
	ports any
}

func (s *stubModule) Ports() any   { return s.ports }
func (s *stubModule) Name() string { return s.name }

var _ Module = (*stubModule)(nil)
