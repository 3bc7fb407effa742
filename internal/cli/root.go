package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"movie-quiz/internal/config"
	"movie-quiz/internal/logging"
)

// rootOptions is filled by the root command before any subcommand runs.
type rootOptions struct {
	configPath string
	cfg        config.Config
}

const productionEnv = "production"

// loadDotEnv fills unset variables from the given .env files outside
// production. Missing files are ignored.
func loadDotEnv(appEnv string, paths ...string) {
	if appEnv == productionEnv {
		return
	}
	_ = godotenv.Load(paths...)
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "movie-quiz",
		Short:        "Movie rating quiz: ten yes/no questions per round",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadDotEnv(os.Getenv("QUIZ_APP_ENV"))

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logger := logging.New(cfg.App.Name, cfg.App.Env, cfg.Log.Level)
			cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(
		newPlayCmd(opts),
		newStartCmd(opts),
		newBotCmd(opts),
		newStatsCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}
