package main

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"
	"ponto.app/ponto/config"
	"ponto.app/ponto/core"
	"ponto.app/ponto/infrastructure/communication"
	"ponto.app/ponto/infrastructure/filesystem"
	"ponto.app/ponto/lambdas/archive-day/helper"
	"ponto.app/ponto/lambdas/common"
	"ponto.app/ponto/log"
)

func newArchiver(ctx context.Context, cfg *config.Config) (*helper.Archiver, error) {
	logger := log.New("archive-day")

	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}

	// saves never happen here, so skip the debounce wrapper
	cfg.Store.Debounce = 0
	s, _, err := cfg.OpenStore(ctx, logger)
	if err != nil {
		return nil, err
	}

	engine, err := core.NewEngine(ctx, s, core.WithLocation(loc), core.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	files, err := filesystem.ConnectS3(ctx, cfg.Archive.Bucket)
	if err != nil {
		return nil, err
	}

	a := &helper.Archiver{
		Engine:   engine,
		Files:    files,
		Notifier: communication.Nop{},
		From:     cfg.Archive.From,
		To:       cfg.Archive.To,
		Now:      time.Now,
		Logger:   logger,
	}

	if cfg.Archive.From != "" {
		mailer, err := communication.ConnectMailer(ctx)
		if err != nil {
			return nil, err
		}
		a.Mailer = mailer
	}
	if cfg.Slack.Token != "" {
		a.Notifier = communication.NewSlack(cfg.Slack.Token, communication.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannelID,
			ErrorChannelID: cfg.Slack.ErrorChannelID,
		})
	}

	return a, nil
}

func main() {
	ctx := context.Background()
	logger := log.New("archive-day")

	cfg, err := common.LoadConfig(ctx)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if cfg.Archive.Bucket == "" {
		logger.Error("archive.bucket is required")
		os.Exit(1)
	}

	archiver, err := newArchiver(ctx, cfg)
	if err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}

	lambda.Start(archiver.Archive)
}
