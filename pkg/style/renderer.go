package style

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/steamshots/pkg/catalog"
	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
)

// timeResolution is the precision pass durations are rounded to for display.
const timeResolution = time.Millisecond

// Verbs holds the phrasing for a change kind in both tenses. Past is used
// after changes were applied, Future when a dry run only planned them.
type Verbs struct {
	Past   string
	Future string
}

var changeVerbs = map[string]Verbs{
	"link":     {Past: "linked", Future: "would link"},
	"retarget": {Past: "retargeted", Future: "would retarget"},
	"unlink":   {Past: "unlinked", Future: "would unlink"},
	"mkdir":    {Past: "created", Future: "would create"},
	"rmdir":    {Past: "removed", Future: "would remove"},
}

func verb(kind string, dryRun bool) string {
	v, ok := changeVerbs[kind]
	if !ok {
		return kind
	}
	if dryRun {
		return v.Future
	}
	return v.Past
}

// StatusHeader carries the context lines shown above the per-account status.
type StatusHeader struct {
	SteamRoot   string
	Destination string
	Issues      []catalog.Issue
}

// Renderer defines the interface for rendering command output.
type Renderer interface {
	RenderReport(rep *reconcile.Report) string
	RenderStatus(header StatusHeader, accounts []AccountStatus) string
	RenderError(err error) string
	SummaryLine(rep *reconcile.Report) string
}

// TerminalRenderer implements Renderer with rich terminal output.
type TerminalRenderer struct {
	width int
}

// NewTerminalRenderer creates a new terminal renderer.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		width: 80, // Default width, can be updated
	}
}

// SetWidth updates the terminal width for rendering.
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = width
}

// RenderReport renders the outcome of one reconciliation pass.
func (r *TerminalRenderer) RenderReport(rep *reconcile.Report) string {
	var result strings.Builder

	result.WriteString(TitleStyle.Render("Screenshot farm") + " " + PathStyle.Render(rep.Root) + "\n")

	if rep.Changed() {
		result.WriteString("\n")
	}
	for _, dir := range rep.CreatedDirs {
		result.WriteString(fmt.Sprintf("  %s %-15s %s\n",
			SuccessIndicator, verb("mkdir", rep.DryRun), PathStyle.Render(r.rel(rep, dir))))
	}
	for _, lc := range rep.Created {
		result.WriteString(fmt.Sprintf("  %s %-15s %s → %s\n",
			SuccessIndicator, verb("link", rep.DryRun),
			LinkStyle.Render(r.rel(rep, lc.Path)), PathStyle.Render(lc.Target)))
	}
	for _, lc := range rep.Retargeted {
		result.WriteString(fmt.Sprintf("  %s %-15s %s → %s (was %s)\n",
			SuccessIndicator, verb("retarget", rep.DryRun),
			LinkStyle.Render(r.rel(rep, lc.Path)), PathStyle.Render(lc.Target),
			MutedStyle.Render(lc.OldTarget)))
	}
	for _, lc := range rep.Removed {
		result.WriteString(fmt.Sprintf("  %s %-15s %s\n",
			PendingIndicator, verb("unlink", rep.DryRun), LinkStyle.Render(r.rel(rep, lc.Path))))
	}
	for _, dir := range rep.RemovedDirs {
		result.WriteString(fmt.Sprintf("  %s %-15s %s\n",
			PendingIndicator, verb("rmdir", rep.DryRun), PathStyle.Render(r.rel(rep, dir))))
	}

	if len(rep.Conflicts) > 0 {
		result.WriteString("\n" + WarningStyle.Render("Conflicts") + "\n")
		for _, c := range rep.Conflicts {
			result.WriteString(fmt.Sprintf("  %s %s: %s\n",
				WarningIndicator, LinkStyle.Render(c.RelPath), c.Reason))
		}
		result.WriteString(MutedStyle.Render("  Conflicting paths are left untouched. Move them aside and run link again.") + "\n")
	}

	if len(rep.Failures) > 0 {
		result.WriteString("\n" + ErrorStyle.Render("Failures") + "\n")
		for _, f := range rep.Failures {
			result.WriteString(fmt.Sprintf("  %s %s %s: %v\n",
				ErrorIndicator, f.Op, LinkStyle.Render(f.RelPath), f.Err))
		}
	}

	if len(rep.Issues) > 0 {
		result.WriteString("\n" + WarningStyle.Render("Metadata issues") + "\n")
		for _, is := range rep.Issues {
			result.WriteString(fmt.Sprintf("  %s %s\n", WarningIndicator, is.String()))
		}
	}

	result.WriteString("\n" + r.SummaryLine(rep) + "\n")
	if rep.DryRun {
		result.WriteString(MutedStyle.Render("Dry run, nothing was changed.") + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// SummaryLine renders a one line digest of a pass, compact enough for the
// live status line of the watch command.
func (r *TerminalRenderer) SummaryLine(rep *reconcile.Report) string {
	parts := []string{
		fmt.Sprintf("%d accounts", rep.Accounts),
		fmt.Sprintf("%d games", rep.Games),
	}

	if len(rep.Created) > 0 {
		parts = append(parts, SuccessStyle.Render(fmt.Sprintf("%d %s", len(rep.Created), verb("link", rep.DryRun))))
	}
	if len(rep.Retargeted) > 0 {
		parts = append(parts, SuccessStyle.Render(fmt.Sprintf("%d %s", len(rep.Retargeted), verb("retarget", rep.DryRun))))
	}
	if len(rep.Removed) > 0 {
		parts = append(parts, InfoStyle.Render(fmt.Sprintf("%d %s", len(rep.Removed), verb("unlink", rep.DryRun))))
	}
	if rep.Unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", rep.Unchanged))
	}
	if len(rep.Conflicts) > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d conflicts", len(rep.Conflicts))))
	}
	if len(rep.Failures) > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failures", len(rep.Failures))))
	}

	return fmt.Sprintf("%s (%s)", strings.Join(parts, ", "), rep.Duration.Round(timeResolution))
}

// RenderStatus renders the status command output: context lines, then each
// account folder with its entries, then any metadata issues.
func (r *TerminalRenderer) RenderStatus(header StatusHeader, accounts []AccountStatus) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("%s : %s\n", SubtitleStyle.Render("Steam      "), PathStyle.Render(header.SteamRoot)))
	result.WriteString(fmt.Sprintf("%s : %s\n", SubtitleStyle.Render("Screenshots"), PathStyle.Render(header.Destination)))

	if len(accounts) == 0 {
		result.WriteString("\n" + MutedStyle.Render("No Steam accounts found.") + "\n")
	}
	for _, as := range accounts {
		result.WriteString("\n" + RenderAccountStatus(as) + "\n")
	}

	if len(header.Issues) > 0 {
		result.WriteString("\n" + WarningStyle.Render("Metadata issues") + "\n")
		for _, is := range header.Issues {
			result.WriteString(fmt.Sprintf("  %s %s\n", WarningIndicator, is.String()))
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message.
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	code := errors.GetErrorCode(err)
	if code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

func (r *TerminalRenderer) rel(rep *reconcile.Report, path string) string {
	if rep.Root == "" {
		return path
	}
	rel, err := filepath.Rel(rep.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// PlainRenderer implements Renderer with plain text output for pipes and
// non-terminal destinations.
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderReport renders a pass outcome without styling.
func (r *PlainRenderer) RenderReport(rep *reconcile.Report) string {
	var result strings.Builder

	result.WriteString("Screenshot farm " + rep.Root + "\n")

	for _, dir := range rep.CreatedDirs {
		result.WriteString(fmt.Sprintf("  %s %s\n", verb("mkdir", rep.DryRun), relTo(rep.Root, dir)))
	}
	for _, lc := range rep.Created {
		result.WriteString(fmt.Sprintf("  %s %s -> %s\n", verb("link", rep.DryRun), relTo(rep.Root, lc.Path), lc.Target))
	}
	for _, lc := range rep.Retargeted {
		result.WriteString(fmt.Sprintf("  %s %s -> %s (was %s)\n",
			verb("retarget", rep.DryRun), relTo(rep.Root, lc.Path), lc.Target, lc.OldTarget))
	}
	for _, lc := range rep.Removed {
		result.WriteString(fmt.Sprintf("  %s %s\n", verb("unlink", rep.DryRun), relTo(rep.Root, lc.Path)))
	}
	for _, dir := range rep.RemovedDirs {
		result.WriteString(fmt.Sprintf("  %s %s\n", verb("rmdir", rep.DryRun), relTo(rep.Root, dir)))
	}
	for _, c := range rep.Conflicts {
		result.WriteString(fmt.Sprintf("  conflict %s: %s\n", c.RelPath, c.Reason))
	}
	for _, f := range rep.Failures {
		result.WriteString(fmt.Sprintf("  failed %s %s: %v\n", f.Op, f.RelPath, f.Err))
	}
	for _, is := range rep.Issues {
		result.WriteString(fmt.Sprintf("  issue %s\n", is.String()))
	}

	result.WriteString(r.SummaryLine(rep) + "\n")
	if rep.DryRun {
		result.WriteString("Dry run, nothing was changed.\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// SummaryLine renders a plain one line digest of a pass.
func (r *PlainRenderer) SummaryLine(rep *reconcile.Report) string {
	return fmt.Sprintf("%d accounts, %d games: %d %s, %d %s, %d %s, %d unchanged, %d conflicts, %d failures (%s)",
		rep.Accounts, rep.Games,
		len(rep.Created), verb("link", rep.DryRun),
		len(rep.Retargeted), verb("retarget", rep.DryRun),
		len(rep.Removed), verb("unlink", rep.DryRun),
		rep.Unchanged, len(rep.Conflicts), len(rep.Failures),
		rep.Duration.Round(timeResolution))
}

// RenderStatus renders the status command output without styling.
func (r *PlainRenderer) RenderStatus(header StatusHeader, accounts []AccountStatus) string {
	var result strings.Builder

	result.WriteString("Steam       : " + header.SteamRoot + "\n")
	result.WriteString("Screenshots : " + header.Destination + "\n")

	if len(accounts) == 0 {
		result.WriteString("\nNo Steam accounts found.\n")
	}
	for _, as := range accounts {
		result.WriteString("\n" + as.Name + ":\n")
		if len(as.Links) == 0 {
			result.WriteString("    no games with screenshots yet\n")
			continue
		}
		for _, ls := range as.Links {
			msg := ls.Detail
			switch ls.Status {
			case StatusLinked:
				msg = "linked to " + ls.Target
			case StatusPending:
				msg = "will be linked to " + ls.Target
			case StatusStale:
				msg = "stale, will be removed (was " + ls.Target + ")"
			}
			result.WriteString(fmt.Sprintf("    %-8s : %-24s : %s\n", string(ls.Status), ls.Name, msg))
		}
	}

	if len(header.Issues) > 0 {
		result.WriteString("\nMetadata issues\n")
		for _, is := range header.Issues {
			result.WriteString("  " + is.String() + "\n")
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message.
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	code := errors.GetErrorCode(err)
	if code != errors.ErrUnknown {
		return fmt.Sprintf("Error [%s]: %s", string(code), err.Error())
	}
	return "Error: " + err.Error()
}

func relTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
