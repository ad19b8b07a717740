// Package ui renders wellplan command output for a terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/wellplan/internal/ansi"
	"github.com/papapumpkin/wellplan/internal/fieldopt"
	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

// Printer writes styled status lines. The zero value is not usable; use New.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return &Printer{w: os.Stderr}
}

// NewWriter returns a Printer writing to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Banner prints the program header.
func (p *Printer) Banner() {
	fmt.Fprintln(p.w, ansi.Bold+ansi.Cyan+"  ╔═══════════════════════════════════╗"+ansi.Reset)
	fmt.Fprintln(p.w, ansi.Bold+ansi.Cyan+"  ║"+ansi.Reset+ansi.Bold+"  WELLPLAN  "+ansi.Dim+"oilfield layout core"+ansi.Reset+ansi.Bold+ansi.Cyan+"   ║"+ansi.Reset)
	fmt.Fprintln(p.w, ansi.Bold+ansi.Cyan+"  ╚═══════════════════════════════════╝"+ansi.Reset)
	fmt.Fprintln(p.w)
}

// Error prints msg as an error.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

// Info prints msg dimmed.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.w, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

// Success prints msg with a check mark.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.w, ansi.Green+ansi.Bold+"✓ "+ansi.Reset+"%s\n", msg)
}

// Warning prints msg with a warning sign.
func (p *Printer) Warning(msg string) {
	fmt.Fprintf(p.w, ansi.Yellow+ansi.Bold+"⚠ "+ansi.Reset+"%s\n", msg)
}

// Notice prints a drop outcome in the colour of its level.
func (p *Printer) Notice(n oilfield.Notice) {
	switch n.Level {
	case oilfield.LevelSuccess:
		p.Success(n.Message)
	case oilfield.LevelWarning:
		p.Warning(n.Message)
	case oilfield.LevelError:
		p.Error(n.Message)
	default:
		p.Info(n.Message)
	}
}

// Field prints the grouping state, one line per site and one for the
// ungrouped bucket.
func (p *Printer) Field(f oilfield.Oilfield, label func(int) string) {
	fmt.Fprintf(p.w, ansi.Bold+"%s"+ansi.Reset+ansi.Dim+" (%s)"+ansi.Reset+"\n", f.Name, f.ID)
	for _, s := range f.Sites {
		fmt.Fprintf(p.w, "  "+ansi.Cyan+"Site NO%d"+ansi.Reset+"  %s\n", s.ID, wellList(s.Wells, label))
	}
	fmt.Fprintf(p.w, "  "+ansi.Yellow+"Ungrouped"+ansi.Reset+" %s\n", wellList(f.Ungrouped, label))
}

func wellList(wells []int, label func(int) string) string {
	if len(wells) == 0 {
		return ansi.Dim + "(none)" + ansi.Reset
	}
	names := make([]string, len(wells))
	for i, w := range wells {
		names[i] = label(w)
	}
	return strings.Join(names, ", ")
}

// ValidationResult prints the outcome of well data validation.
func (p *Printer) ValidationResult(path string, res wellgeom.Result) {
	if res.Valid {
		fmt.Fprintf(p.w, ansi.Green+ansi.Bold+"✓ %s"+ansi.Reset+" well data is valid\n", path)
		return
	}
	fmt.Fprintf(p.w, ansi.Red+ansi.Bold+"✗ %s"+ansi.Reset+" %d error(s)\n", path, len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintf(p.w, "  "+ansi.Red+"•"+ansi.Reset+" %s: %s\n", e.Field, e.Message)
	}
}

// ComputeProblems prints the problems that block a solver request.
func (p *Printer) ComputeProblems(msgs []string) {
	fmt.Fprintf(p.w, ansi.Red+ansi.Bold+"✗ compute input has %d problem(s)"+ansi.Reset+"\n", len(msgs))
	for _, m := range msgs {
		fmt.Fprintf(p.w, "  "+ansi.Red+"•"+ansi.Reset+" %s\n", m)
	}
}

// ComputeSubmitted prints the solver's reply.
func (p *Printer) ComputeSubmitted(resp fieldopt.Response) {
	msg := resp.Message
	if msg == "" {
		msg = "request accepted"
	}
	fmt.Fprintf(p.w, ansi.Green+ansi.Bold+"✓ solver"+ansi.Reset+" %s\n", msg)
}

// ServeStarted prints the listening address.
func (p *Printer) ServeStarted(addr string) {
	fmt.Fprintf(p.w, ansi.Cyan+"◆ listening"+ansi.Reset+" on %s\n", addr)
	fmt.Fprintf(p.w, ansi.Dim+"  health check: http://%s/health"+ansi.Reset+"\n", hostPort(addr))
}

func hostPort(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
