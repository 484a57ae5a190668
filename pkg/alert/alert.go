// Package alert maps case counts and backend risk levels to display tiers.
package alert

import (
	"fmt"

	"tableflip.dev/outbreak/pkg/api"
)

// Severity orders the alert tiers.
type Severity int

const (
	Low Severity = iota
	Medium
	High
)

func (s Severity) String() string {
	switch s {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// Case count thresholds for the fleet banner. A count equal to a threshold
// stays in the lower tier.
const (
	HighThreshold   = 100
	MediumThreshold = 50
)

// Hint is a presentation hint for a tier.
type Hint struct {
	Background string
	Foreground string
	Class      string
}

// Tier is a classified severity with its label and styling hint.
type Tier struct {
	Severity Severity
	Label    string
	Hint     Hint
}

var hints = map[Severity]Hint{
	High:   {Background: "#ff6b6b", Foreground: "#ffffff", Class: "high"},
	Medium: {Background: "#ffc107", Foreground: "#333333", Class: "medium"},
	Low:    {Background: "#51cf66", Foreground: "#ffffff", Class: "low"},
}

var labels = map[Severity]string{
	High:   "High Alert",
	Medium: "Moderate Alert",
	Low:    "All Clear",
}

// For returns the tier for a severity.
func For(s Severity) Tier {
	return Tier{Severity: s, Label: labels[s], Hint: hints[s]}
}

// Classify maps the highest current case count across diseases to a tier.
func Classify(maxCases int) Tier {
	switch {
	case maxCases > HighThreshold:
		return For(High)
	case maxCases > MediumThreshold:
		return For(Medium)
	default:
		return For(Low)
	}
}

// ForLevel maps a backend-asserted alert level to a tier. The level is
// trusted as is; no threshold is applied.
func ForLevel(level api.AlertLevel) Tier {
	var s Severity
	switch level {
	case api.AlertHigh:
		s = High
	case api.AlertMedium:
		s = Medium
	default:
		s = Low
	}
	t := For(s)
	t.Label = fmt.Sprintf("%s RISK ALERT", level)
	if level == "" {
		t.Label = fmt.Sprintf("%s RISK ALERT", api.AlertLow)
	}
	return t
}
