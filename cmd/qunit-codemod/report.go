package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/specvital/qunit-codemod/pkg/domain"
	"github.com/specvital/qunit-codemod/pkg/runner"
)

// printReport renders one row per changed or failed file, followed by totals.
// Unchanged and skipped files are listed only when verbose is set.
func printReport(w io.Writer, reports []*runner.Report, verbose bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"File", "Status", "Hooks", "Assert", "Import"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	var total runner.Stats
	errs := make(map[string]runner.FileError)

	for _, report := range reports {
		for _, fe := range report.Errors {
			errs[fe.Path] = fe
		}

		for _, f := range report.Inventory.Files {
			if !verbose && (f.Status == domain.FileStatusUnchanged || f.Status == domain.FileStatusSkipped) {
				continue
			}

			status := string(f.Status)
			if fe, ok := errs[f.Path]; ok {
				status = fmt.Sprintf("%s (%s)", f.Status, fe.Phase)
			}

			tw.AppendRow(table.Row{
				f.Path,
				status,
				f.Edits.RenamedKeys,
				f.Edits.InjectedParams,
				yesNo(f.Edits.ImportAdded),
			})
		}

		total.FilesScanned += report.Stats.FilesScanned
		total.FilesChanged += report.Stats.FilesChanged
		total.FilesUnchanged += report.Stats.FilesUnchanged
		total.FilesSkipped += report.Stats.FilesSkipped
		total.FilesFailed += report.Stats.FilesFailed
		total.Duration += report.Stats.Duration
	}

	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d scanned", total.FilesScanned),
		fmt.Sprintf("%d changed, %d failed", total.FilesChanged, total.FilesFailed),
		"",
		"",
		fmt.Sprintf("%d unchanged, %d skipped", total.FilesUnchanged, total.FilesSkipped),
	})
	tw.Render()

	for _, report := range reports {
		for _, fe := range report.Errors {
			_, _ = fmt.Fprintln(w, fe.Error())
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
