package registration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"remd/internal/platform/logger"

	"github.com/kballard/go-shellquote"
)

// Placeholder in the command template replaced by the item id
const Placeholder = "{item}"

const (
	defaultWaitDelay = 5 * time.Second
	outputLimit      = 8 << 10
)

// ExitError reports a registration process that ran and exited non-zero
type ExitError struct {
	Item   string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("registration: %s exited with %d", e.Item, e.Code)
}

// Exec runs the registration command once per item without a shell
type Exec struct {
	argv []string

	// Dir is the working directory; empty inherits ours
	Dir string

	// Env is appended to the inherited environment
	Env []string

	// WaitDelay bounds how long Wait lingers on output pipes after a kill
	WaitDelay time.Duration
}

// NewExec parses a shell-quoted command line such as
//
//	sudo -u daemon /usr/bin/php bin/console app:remd:reg {item}
//
// When the template has no {item} token the item is appended as the last argument
func NewExec(cmdline string) (*Exec, error) {
	argv, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("registration: parse command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("registration: empty command")
	}
	return &Exec{argv: argv, WaitDelay: defaultWaitDelay}, nil
}

// Args returns the argv used for item
func (e *Exec) Args(item string) []string {
	out := make([]string, 0, len(e.argv)+1)
	replaced := false
	for _, a := range e.argv {
		if strings.Contains(a, Placeholder) {
			a = strings.ReplaceAll(a, Placeholder, item)
			replaced = true
		}
		out = append(out, a)
	}
	if !replaced {
		out = append(out, item)
	}
	return out
}

// Register runs the command for item and blocks until it exits or ctx ends.
// On ctx end the whole process group is killed
func (e *Exec) Register(ctx context.Context, item string) error {
	args := e.Args(item)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = e.Dir
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	killGroupOnCancel(cmd)
	cmd.WaitDelay = e.WaitDelay

	out := &tailBuffer{limit: outputLimit}
	cmd.Stdout = out
	cmd.Stderr = out

	log := logger.From(ctx, logger.Named("registration")).With().Str("item", item).Logger()

	err := cmd.Run()
	if err == nil {
		log.Debug().Msg("registration: ok")
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Warn().Err(ctxErr).Str("output", out.String()).Msg("registration: killed")
		return fmt.Errorf("registration: %s: %w", item, ctxErr)
	}
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		log.Debug().Int("code", xe.ExitCode()).Str("output", out.String()).Msg("registration: non-zero exit")
		return &ExitError{Item: item, Code: xe.ExitCode(), Output: out.String()}
	}
	return fmt.Errorf("registration: start %s: %w", args[0], err)
}

// tailBuffer keeps the last limit bytes written; safe for the two copy goroutines
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.Write(p)
	if over := t.buf.Len() - t.limit; over > 0 {
		t.buf.Next(over)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(t.buf.String())
}
