package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lumentrace/lumen/pkg/history"
)

// historyCommand creates the history command for listing past runs.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past render and generate runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewFileStore("")
			if err != nil {
				return err
			}

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No runs recorded yet")
				return nil
			}

			printHistory(records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to show (0 for all)")
	cmd.AddCommand(c.historyClearCommand())

	return cmd
}

// historyClearCommand creates the "history clear" subcommand.
func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewFileStore("")
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("History cleared")
			return nil
		},
	}
}

// shortID abbreviates a run UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printHistory renders the run table, newest first.
func printHistory(records []*history.Record) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		size := ""
		if rec.Width > 0 {
			size = fmt.Sprintf("%dx%d", rec.Width, rec.Height)
		}
		failed := ""
		if rec.FailedRays > 0 {
			failed = fmt.Sprintf("%d", rec.FailedRays)
		}
		status := ""
		if rec.CacheHit {
			status = iconCached
		}
		rows = append(rows, []string{
			shortID(rec.ID),
			rec.Operation,
			rec.ScenePath,
			size,
			failed,
			fmt.Sprintf("%.2fs", rec.Duration),
			status,
			rec.StartedAt.Format(time.DateTime),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Run", "Op", "Scene", "Size", "Failed", "Time", "", "Started").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return StyleDim
			case 4:
				return StyleWarning
			case 6:
				return styleCached
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}
