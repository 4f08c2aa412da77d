package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"daily-digest/article"
	"daily-digest/config"
	"daily-digest/digest"
	"daily-digest/feed"
	"daily-digest/logger"
	"daily-digest/publish"
	"daily-digest/summarize"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Build today's digest and rebuild the archive index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd.Context(), v, cmd.ErrOrStderr())
		},
	}
}

func archiveCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Rebuild archive.html from the dated pages on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadServe(v)
			log := newLogger(v, cmd)

			n, err := publish.NewPublisher(cfg.OutputDir, cfg.SiteTitle, log).RebuildArchive()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archive.html lists %d digest(s)\n", n)
			return nil
		},
	}
}

// runDigest loads configuration before building any client, so a missing
// credential fails without network access or file writes.
func runDigest(ctx context.Context, v *viper.Viper, logOut io.Writer) error {
	cfg, err := config.Load(v, time.Now())
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, logOut)

	gen, err := summarize.NewGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	svc := digest.NewService(
		digest.OptionsFromConfig(cfg),
		feed.NewReader(cfg.MaxPerFeed, cfg.FeedTimeout, cfg.UserAgent),
		article.Default(log, cfg.UserAgent, cfg.FetchTimeout),
		summarize.NewSummarizer(gen, cfg.PromptChars),
		publish.NewPublisher(cfg.OutputDir, cfg.SiteTitle, log),
		log,
	)

	log.Info("starting run", "date", cfg.Date, "feeds", len(cfg.Feeds), "provider", cfg.Provider, "model", gen.Model())

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	if len(report.FailedFeeds) > 0 || len(report.SkippedItems) > 0 {
		log.Warn("digest published with gaps", "failed_feeds", report.FailedFeeds, "skipped_items", report.SkippedItems)
	}
	log.Info(fmt.Sprintf("wrote %s, %s, and updated %s", publish.LatestFile, publish.ArchiveFileName(cfg.Date), publish.ArchiveIndexFile))
	return nil
}
