package printers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/outbreak/pkg/alert"
	"tableflip.dev/outbreak/pkg/api"
	"tableflip.dev/outbreak/pkg/chart"
	"tableflip.dev/outbreak/pkg/dashboard"
	"tableflip.dev/outbreak/pkg/forecast"
	"tableflip.dev/outbreak/pkg/status"
)

type PrettyPrint struct {
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func tierColor(s alert.Severity) *color.Color {
	switch s {
	case alert.High:
		return color.New(color.Bold, color.BgRed, color.FgHiWhite)
	case alert.Medium:
		return color.New(color.Bold, color.BgYellow, color.FgBlack)
	default:
		return color.New(color.Bold, color.BgGreen, color.FgHiWhite)
	}
}

// Banner prints the fleet alert, or the error indicator after a failed
// refresh.
func (pp *PrettyPrint) Banner(b status.Banner) {
	if b.Err != nil {
		e := color.New(color.FgRed, color.Bold)
		_, _ = e.Fprintln(pp.out(), status.ErrorMessage)
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "  %v\n", b.Err)
		return
	}
	_, _ = tierColor(b.Tier.Severity).Fprintf(pp.out(), " %s ", b.Message)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Cards prints one row per disease.
func (pp *PrettyPrint) Cards(cards []status.Card) {
	if len(cards) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	bold := color.New(color.Bold)
	up := color.New(color.FgRed)
	down := color.New(color.FgGreen)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Disease"), bold.Sprint("Cases"), bold.Sprint("Date"), bold.Sprint("Trend"))
	for _, c := range cards {
		trend := down
		if c.Trend == api.Increasing {
			trend = up
		}
		tbl.AddRow(c.Disease, strconv.Itoa(c.Cases), c.Date.String(), trend.Sprintf("%s %s", c.Arrow(), c.Trend))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Panels prints the alert box, stats and forecast table.
func (pp *PrettyPrint) Panels(p dashboard.Panels) {
	if p.Alert != nil {
		_, _ = tierColor(p.Alert.Severity).Fprintf(pp.out(), " %s ", p.Alert.Label)
		_, _ = fmt.Fprintf(pp.out(), " %s\n\n", p.AlertMessage)
	}

	faint := color.New(color.Faint)
	stats := uitable.New()
	stats.Separator = "  "
	stats.AddRow(faint.Sprint("Forecast Period"), orDash(p.Stats.Period()))
	peak := ""
	if p.Stats.HasPeak {
		peak = FormatCases(p.Stats.Peak)
	}
	stats.AddRow(faint.Sprint("Peak Cases"), orDash(peak))
	stats.AddRow(faint.Sprint("Last Updated"), orDash(p.Stats.LastUpdated.String()))
	_, _ = fmt.Fprintln(pp.out(), stats)
	pp.NewLine()

	pp.Rows(p.Rows)
}

func (pp *PrettyPrint) Rows(rows []forecast.Row) {
	bold := color.New(color.Bold)
	up := color.New(color.FgRed)
	down := color.New(color.FgGreen)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Predicted Cases"), bold.Sprint("Trend"))
	for _, r := range rows {
		c := down
		if r.Trend == forecast.Up {
			c = up
		}
		tbl.AddRow(r.Date.String(), FormatCases(r.Predicted), c.Sprint(r.Trend.Arrow()))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Figure lists a figure's layers and the axis each is bound to.
func (pp *PrettyPrint) Figure(f chart.Figure) {
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, l := range f.Layers {
		axis := string(l.Axis)
		if spec, ok := f.Axis(l.Axis); ok {
			axis = spec.Title
		}
		tbl.AddRow(l.Name, l.Style.Mark.String(), faint.Sprint(axis), fmt.Sprintf("%d points", len(l.Y)))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// FormatCases prints a count in its shortest form.
func FormatCases(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
