package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Status of a single farm entry as observed on disk.
type Status string

const (
	StatusLinked   Status = "linked"   // Link exists and points at the right storage
	StatusPending  Status = "pending"  // Link does not exist yet
	StatusStale    Status = "stale"    // Managed link whose game or account is gone
	StatusConflict Status = "conflict" // Desired path occupied by foreign data
	StatusFailed   Status = "failed"   // Last attempt to fix this entry failed
)

// StatusStyle returns the appropriate pterm style for a status badge.
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusLinked:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusPending:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusStale:
		return pterm.NewStyle(pterm.FgGray)
	case StatusConflict:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// LinkStatus is the state of one entry inside an account folder.
type LinkStatus struct {
	Name   string // Entry name inside the account folder
	Target string // Screenshot storage it points (or should point) at
	Status Status
	Detail string // Conflict reason or failure message
}

// AccountStatus is one account folder with all of its entries.
type AccountStatus struct {
	Name   string
	Status Status // Aggregated from the entries
	Links  []LinkStatus
}

// RenderLinkStatus renders a single entry line.
func RenderLinkStatus(ls LinkStatus) string {
	// Pad before styling so ANSI codes do not break the column width.
	badge := StatusStyle(ls.Status).Sprint(fmt.Sprintf("%-8s", string(ls.Status)))
	name := fmt.Sprintf("%-24s", ls.Name)

	var statusMsg string
	switch ls.Status {
	case StatusLinked:
		statusMsg = fmt.Sprintf("linked to %s", ls.Target)
	case StatusPending:
		statusMsg = fmt.Sprintf("will be linked to %s", ls.Target)
	case StatusStale:
		statusMsg = fmt.Sprintf("stale, will be removed (was %s)", ls.Target)
	case StatusConflict, StatusFailed:
		statusMsg = ls.Detail
	}

	return fmt.Sprintf("    %s : %s : %s", badge, name, statusMsg)
}

// RenderAccountStatus renders an account folder and its entries.
func RenderAccountStatus(as AccountStatus) string {
	var result strings.Builder

	header := as.Name + ":"
	switch as.Status {
	case StatusConflict, StatusFailed:
		header = StatusStyle(StatusConflict).Sprint(header)
	default:
		header = AccountStyle.Render(header)
	}
	result.WriteString(header + "\n")

	if len(as.Links) == 0 {
		result.WriteString("    " + MutedStyle.Render("no games with screenshots yet") + "\n")
		return strings.TrimRight(result.String(), "\n")
	}

	for _, ls := range as.Links {
		result.WriteString(RenderLinkStatus(ls) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// AggregateAccountStatus determines an account's overall status from its
// entries. Any conflict or failure wins, then pending, then stale, and a
// fully linked account reports linked.
func AggregateAccountStatus(links []LinkStatus) Status {
	hasPending := false
	hasStale := false

	for _, ls := range links {
		switch ls.Status {
		case StatusConflict, StatusFailed:
			return StatusConflict
		case StatusPending:
			hasPending = true
		case StatusStale:
			hasStale = true
		}
	}

	if hasPending {
		return StatusPending
	}
	if hasStale {
		return StatusStale
	}
	return StatusLinked
}
