package report

import (
	"io"
	"os"

	dom "remd/internal/services/napr/domain"

	"github.com/pterm/pterm"
	"golang.org/x/text/message"
)

// Bar is a pterm progress bar sized to the work list; it satisfies domain.Progress
type Bar struct {
	Out io.Writer

	p    *message.Printer
	bar  *pterm.ProgressbarPrinter
	done int
}

var _ dom.Progress = (*Bar)(nil)

// NewBar returns a bar writing to out (stderr when nil)
func NewBar(out io.Writer, lang string) *Bar {
	if out == nil {
		out = os.Stderr
	}
	return &Bar{Out: out, p: Printer(lang)}
}

// Start shows the bar; a failed start leaves the run without a bar
func (b *Bar) Start(total int) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(b.p.Sprintf(keyProgress)).
		WithWriter(b.Out).
		Start()
	if err != nil {
		return
	}
	b.bar = bar
}

// Tick advances the bar by one finished item
func (b *Bar) Tick(dom.DispatchOutcome) {
	b.done++
	if b.bar != nil {
		b.bar.Increment()
	}
}

// Stop finishes the bar; safe without Start
func (b *Bar) Stop() {
	if b.bar == nil {
		return
	}
	_, _ = b.bar.Stop()
	b.bar = nil
}

// Done is the number of ticks seen
func (b *Bar) Done() int { return b.done }
