package builder

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// printSummary renders the per-stage outcome table at the end of a run.
func (b *Builder) printSummary(results []StageResult) {
	t := table.NewWriter()
	t.SetOutputMirror(b.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stage", "Result"})

	for _, r := range results {
		label := r.Status.String()
		switch r.Status {
		case StageOK:
			label = text.FgGreen.Sprint(label)
		case StageFailed:
			label = text.FgRed.Sprint(label)
		case StageSkipped:
			label = text.FgYellow.Sprint(label)
		}
		t.AppendRow(table.Row{r.Name, label})
	}

	fmt.Fprintln(b.out)
	t.Render()
}

// printFollowUps lists the manual commands for every advisory stage that
// failed. Called only on successful runs; a fatal failure ends the run
// before any follow-up matters.
func (b *Builder) printFollowUps(results []StageResult) {
	var failed []StageResult
	for _, r := range results {
		if r.Status == StageFailed {
			failed = append(failed, r)
		}
	}

	fmt.Fprintln(b.out)
	if len(failed) == 0 {
		fmt.Fprintln(b.out, "Setup complete!")
		fmt.Fprintln(b.out)
		fmt.Fprintln(b.out, "Run your project with:")
		fmt.Fprintln(b.out, "  python manage.py runserver")
		return
	}

	fmt.Fprintln(b.out, "Setup complete, with steps left to finish by hand:")
	for _, r := range failed {
		fmt.Fprintf(b.out, "  %s:\n", r.Name)
		for _, cmd := range followUps[r.Name] {
			fmt.Fprintf(b.out, "    %s\n", cmd)
		}
	}
	fmt.Fprintln(b.out)
	fmt.Fprintln(b.out, "Then run your project with:")
	fmt.Fprintln(b.out, "  python manage.py runserver")
}
