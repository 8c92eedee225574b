package registration

import "context"

// Func adapts a plain function to the registrar port; handy for dry runs and tests
type Func func(ctx context.Context, item string) error

// Register calls f
func (f Func) Register(ctx context.Context, item string) error { return f(ctx, item) }

// DryRun registers nothing and always succeeds
var DryRun = Func(func(context.Context, string) error { return nil })
