// Package report renders a napr run for the operator: progress, outcome table and summary
package report

import (
	"io"
	"os"
	"strconv"

	dom "remd/internal/services/napr/domain"

	"github.com/pterm/pterm"
	"golang.org/x/text/message"
)

// Headers are the outcome table columns
var Headers = []string{"#", "ID_USER", "NUMBER", "RESULT"}

// Renderer writes localized run output to Out
type Renderer struct {
	Out io.Writer
	p   *message.Printer
}

// New returns a renderer for lang ("ru" or "en"); nil out means stdout
func New(out io.Writer, lang string) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{Out: out, p: Printer(lang)}
}

// Rows builds the table body in seq order
func (r *Renderer) Rows(rep dom.RunReport) [][]string {
	rows := make([][]string, 0, len(rep.Outcomes))
	for _, o := range rep.Outcomes {
		rows = append(rows, []string{
			strconv.Itoa(o.Seq),
			strconv.FormatInt(o.ActorID, 10),
			o.ItemID,
			r.label(o.Status),
		})
	}
	return rows
}

func (r *Renderer) label(s dom.Status) string {
	if s == dom.StatusRegistered {
		return r.p.Sprintf(keyRegistered)
	}
	return r.p.Sprintf(keyError)
}

// Report prints the title, the table and the summary, or the empty notice
func (r *Renderer) Report(rep dom.RunReport) error {
	if rep.Empty() {
		pterm.Warning.WithWriter(r.Out).Println(r.p.Sprintf(keyEmpty))
		return nil
	}

	pterm.Fprintln(r.Out)
	pterm.Fprintln(r.Out, pterm.Bold.Sprint("     "+r.p.Sprintf(keyTitle)+"    "))
	pterm.Fprintln(r.Out)

	data := pterm.TableData{Headers}
	data = append(data, r.Rows(rep)...)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(r.Out).Render(); err != nil {
		return err
	}

	pterm.Success.WithWriter(r.Out).Println(r.p.Sprintf(keySummary, rep.Window.Day(), rep.Total()))

	if n := rep.Count(dom.StatusError); n > 0 {
		pterm.Warning.WithWriter(r.Out).Println(r.p.Sprintf(keyFailed, n, rep.Total()))
	}
	if n := undispatched(rep); n > 0 {
		pterm.Warning.WithWriter(r.Out).Println(r.p.Sprintf(keyInterrupted, n))
	}
	return nil
}

func undispatched(rep dom.RunReport) int {
	n := 0
	for _, o := range rep.Outcomes {
		if !o.Dispatched {
			n++
		}
	}
	return n
}

// Override reports an ignored month/day override and the window used instead
func (r *Renderer) Override(w dom.TimeWindow, err error) {
	pterm.Warning.WithWriter(r.Out).Println(r.p.Sprintf(keyOverride, w.Day(), err))
}

// Busy reports that another run owns the day
func (r *Renderer) Busy(w dom.TimeWindow) {
	pterm.Warning.WithWriter(r.Out).Println(r.p.Sprintf(keyBusy, w.Day()))
}

// Fatal reports a run that could not produce outcomes
func (r *Renderer) Fatal(err error) {
	pterm.Error.WithWriter(r.Out).Println(r.p.Sprintf(keyFatal, err))
}
