package repokit

import "testing"

func TestBindFunc_Bind(t *testing.T) {
	t.Parallel()

	q := &recQ{}
	var seen Queryer
	b := BindFunc[string](func(got Queryer) string {
		seen = got
		return "repo"
	})
	var binder Binder[string] = b
	if got := binder.Bind(q); got != "repo" {
		t.Fatalf("Bind = %q, want repo", got)
	}
	if seen != q {
		t.Fatalf("binder received a different Queryer")
	}
}
