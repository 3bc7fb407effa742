package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"movie-quiz/internal/logging"
	"movie-quiz/internal/transport/terminal"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := buildDeps(ctx, opts.cfg, logging.FromContext(ctx))
			if err != nil {
				return err
			}
			defer d.Close()

			console := terminal.NewConsole(cmd.OutOrStdout())
			engine := d.engineFactory(nil)(ctx, console)
			defer engine.Close()

			return console.Run(ctx, cmd.InOrStdin(), engine)
		},
	}
}
