package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded clips",
	Long: `List the clip attempts stored in the journal, most recent first.
Only useful with a file journal (--journal path/to/journal.db).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		if cfg.Journal == db.MemoryPath {
			return fmt.Errorf("the in-memory journal is empty at startup; pass --journal <file>")
		}

		// Open database
		database, err := db.Open(cfg.Journal)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer database.Close()
		journal := db.NewJournal(database)

		captures, err := journal.Recent(limit)
		if err != nil {
			return fmt.Errorf("failed to query captures: %w", err)
		}
		if len(captures) == 0 {
			fmt.Println("No clips recorded.")
			return nil
		}

		// Create table writer
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Started\tSource\tStart\tEnd\tState\tSize\tDetail")
		fmt.Fprintln(w, "-------\t------\t-----\t---\t-----\t----\t------")
		for _, c := range captures {
			size := "-"
			if c.Filesize > 0 {
				size = humanize.Bytes(uint64(c.Filesize))
			}
			detail := c.SavedPath
			if c.Error != "" {
				detail = c.Error
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				humanize.Time(c.StartedAt), c.SourceName,
				timeutil.FormatClock(c.Start), timeutil.FormatClock(c.End),
				c.State, size, detail)
		}
		w.Flush()

		stats, err := journal.Stats()
		if err != nil {
			return fmt.Errorf("failed to count captures: %w", err)
		}
		fmt.Printf("\n%d clip(s): %d ready, %d failed, %s recorded\n",
			stats.Total, stats.Ready, stats.Failed, humanize.Bytes(uint64(stats.ReadyBytes)))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of clips to list")
	rootCmd.AddCommand(historyCmd)
}
