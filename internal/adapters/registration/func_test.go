package registration

import (
	"context"
	"errors"
	"testing"
)

func TestFunc_Register(t *testing.T) {
	t.Parallel()

	var got string
	boom := errors.New("rejected")
	f := Func(func(_ context.Context, item string) error {
		got = item
		if item == "n-2" {
			return boom
		}
		return nil
	})

	if err := f.Register(context.Background(), "n-1"); err != nil || got != "n-1" {
		t.Fatalf("Register(n-1) = %v, got %q", err, got)
	}
	if err := f.Register(context.Background(), "n-2"); !errors.Is(err, boom) {
		t.Fatalf("Register(n-2) = %v", err)
	}
	if err := DryRun.Register(context.Background(), "n-3"); err != nil {
		t.Fatalf("DryRun: %v", err)
	}
}
