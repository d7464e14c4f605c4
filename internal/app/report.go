package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/startquantum/internal/domain/execution"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/tui"
	"github.com/felixgeelhaar/startquantum/internal/tui/ui"
)

// Report summarizes a finished session.
type Report struct {
	SessionID string
	// Results holds one entry per attempted step, in the order the runs finished.
	Results []execution.StepResult
	// Completed lists the steps installed during the session, in install order.
	Completed []step.Definition
}

func newReport(sessionID string, session *execution.Session) *Report {
	graph := session.Graph()
	report := &Report{
		SessionID: sessionID,
		Results:   session.Results(),
	}
	for _, h := range session.Completed() {
		def, _ := graph.Get(h)
		report.Completed = append(report.Completed, def)
	}
	return report
}

// Failed returns the IDs of the steps that ended failed.
func (r *Report) Failed() []string {
	var ids []string
	for _, result := range r.Results {
		if result.Status() == step.StatusFailed {
			ids = append(ids, result.StepID().String())
		}
	}
	return ids
}

// Result returns the result recorded for id.
func (r *Report) Result(id string) (execution.StepResult, bool) {
	for _, result := range r.Results {
		if result.StepID().String() == id {
			return result, true
		}
	}
	return execution.StepResult{}, false
}

func stylesFor(out io.Writer) ui.Styles {
	return ui.NewStyles(lipgloss.NewRenderer(out))
}

// PrintCompletion prints the steps installed during the session.
func PrintCompletion(out io.Writer, report *Report) {
	styles := stylesFor(out)

	fmt.Fprintln(out, styles.Title.Render("Installation completed! The following installation steps were performed:"))
	if len(report.Completed) == 0 {
		fmt.Fprintln(out, styles.Muted.Render("(nothing needed to be installed)"))
		return
	}
	for _, def := range report.Completed {
		fmt.Fprintf(out, "- %s\n", def.DisplayName())
	}
}

// PrintCheck prints the detected status of every step.
func PrintCheck(out io.Writer, plan *execution.Plan) {
	styles := stylesFor(out)
	summary := plan.Summary()

	fmt.Fprintln(out, styles.Title.Render("startquantum check"))
	fmt.Fprintln(out)

	width := 0
	for _, entry := range plan.Entries() {
		width = max(width, len(entry.Definition().ID.String()))
	}

	for _, entry := range plan.Entries() {
		def := entry.Definition()
		icon := statusStyle(styles, entry.Status()).Render(tui.FormatStatusIcon(entry.Status()))
		fmt.Fprintf(out, "  %s %-*s  %s  %s\n",
			icon,
			width, def.ID.String(),
			def.DisplayName(),
			styles.Muted.Render(entry.Status().String()),
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Steps: %d total, %d installed, %d not installed, %d unknown\n",
		summary.Total, summary.Installed, summary.NotInstalled, summary.Unknown)

	if plan.HasChanges() {
		fmt.Fprintln(out, styles.Help.Render("Run 'startquantum run' to install the missing steps."))
	} else {
		fmt.Fprintln(out, styles.Success.Render("Everything is installed."))
	}
}

// PrintSteps prints the step graph in run order.
func PrintSteps(out io.Writer, steps []PlannedStep) {
	styles := stylesFor(out)

	width := len("STEP")
	for _, s := range steps {
		width = max(width, len(s.ID))
	}

	header := styles.TableHeader.Render(fmt.Sprintf("%-*s", width, "STEP")) +
		styles.TableHeader.Render(fmt.Sprintf("%-10s", "RUN")) +
		styles.TableHeader.Render("REQUIRES")
	fmt.Fprintln(out, header)

	for _, s := range steps {
		run := "no"
		switch {
		case s.Skipped:
			run = "skipped"
		case s.Targeted:
			run = "yes"
		}
		requires := "-"
		if len(s.Requires) > 0 {
			requires = strings.Join(s.Requires, ", ")
		}
		fmt.Fprintln(out,
			styles.TableCell.Render(fmt.Sprintf("%-*s", width, s.ID))+
				styles.TableCell.Render(fmt.Sprintf("%-10s", run))+
				styles.TableCell.Render(requires))
	}
}

func statusStyle(styles ui.Styles, status step.InstallStatus) lipgloss.Style {
	switch status {
	case step.StatusInstalled:
		return styles.Success
	case step.StatusNotInstalled:
		return styles.Info
	case step.StatusDeclined:
		return styles.Warning
	case step.StatusFailed:
		return styles.Error
	default:
		return styles.Muted
	}
}
