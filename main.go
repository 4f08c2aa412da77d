package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"daily-digest/config"
	"daily-digest/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.New()).ExecuteContext(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "daily-digest",
		Short: "Summarize the day's feed entries into a static HTML digest",
		Long: "Polls the configured RSS feeds, fetches each linked article, asks a language model " +
			"for a short summary and writes index.html, news_<date>.html and archive.html.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			return config.ReadFile(v, path)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd.Context(), v, cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.String("output-dir", "", "directory the pages are written to")
	flags.String("log-level", "", "debug, info, warn or error")
	v.BindPFlag("output_dir", flags.Lookup("output-dir"))
	v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(
		runCmd(v),
		archiveCmd(v),
		serveCmd(v),
	)
	return root
}

func newLogger(v *viper.Viper, cmd *cobra.Command) *slog.Logger {
	log := logger.New(v.GetString("log_level"), cmd.ErrOrStderr())
	slog.SetDefault(log)
	return log
}
