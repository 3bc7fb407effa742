package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"movie-quiz/internal/app"
	"movie-quiz/internal/logging"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print lifetime quiz statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildStatistics(cmd.Context(), opts.cfg, logging.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			defer d.Close()

			if reset {
				if err := d.stats.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Statistics reset.")
				return nil
			}
			printStatistics(cmd, d.stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "clear all recorded games")
	return cmd
}

func printStatistics(cmd *cobra.Command, stats *app.StatisticsTracker) {
	record := stats.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Quizzes played: %d\n", record.GamesCount)
	if record.GamesCount > 0 {
		fmt.Fprintf(out, "Record: %d/%d (%s)\n", record.BestGame.Correct, record.BestGame.Total,
			record.BestGame.Date.Local().Format(app.SummaryDateLayout))
	}
	fmt.Fprintf(out, "Average accuracy: %.2f%%\n", record.Accuracy())
}
