package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadchandra19/book-builder/internal/app/engine"
	"github.com/muhammadchandra19/book-builder/internal/app/runner"
	feedv1 "github.com/muhammadchandra19/book-builder/internal/domain/feed/v1"
	"github.com/muhammadchandra19/book-builder/internal/usecase/sink"
	"github.com/muhammadchandra19/book-builder/pkg/config"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/util"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	path, depth, fromArgs, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 2
	}

	cfg := &config.Config{}
	if err := config.Load(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if fromArgs {
		cfg.Feed.Kind = config.SourceFile
		cfg.Feed.Path = path
		cfg.Book.Depth = depth
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)),
		logger.WithOutputPaths([]string{"stderr"}),
		logger.WithConsoleEncoding(),
		logger.WithInitialFields(logger.NewField("app", cfg.App.Name)),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			log.Info("Received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})
			cancel()
		case <-ctx.Done():
		}
	}()

	ctx = util.WithRunID(ctx, "")

	source, label, err := openSource(cfg, log)
	if err != nil {
		if errors.Is(err, feedv1.ErrSourceNotFound) || errors.Is(err, feedv1.ErrSourceEmpty) {
			fmt.Fprintln(stdout, err)
			return 1
		}
		log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "open_source"})
		return 1
	}
	defer source.Close()
	ctx = util.WithSource(ctx, label)

	e, err := engine.NewEngine(&engine.Options{Depth: cfg.Book.Depth}, log)
	if err != nil {
		log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "create_engine"})
		return 1
	}

	publishers, err := openSinks(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "open_sinks"})
		return 1
	}
	defer func() {
		if err := publishers.Close(); err != nil {
			log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "close_sinks"})
		}
	}()

	r := runner.NewRunner(e, sink.NewConsole(stdout), publishers, log)
	if _, err := r.Run(ctx, source); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		return 1
	}
	return 0
}
