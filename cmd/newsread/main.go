package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsread/pkg/config"
	"github.com/umputun/newsread/pkg/content"
	"github.com/umputun/newsread/pkg/download"
	"github.com/umputun/newsread/pkg/feed"
	"github.com/umputun/newsread/pkg/llm"
	"github.com/umputun/newsread/pkg/network"
	"github.com/umputun/newsread/pkg/remote"
	"github.com/umputun/newsread/pkg/repository"
	"github.com/umputun/newsread/pkg/service"
	"github.com/umputun/newsread/pkg/syncer"
	"github.com/umputun/newsread/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DBPath string `long:"db" env:"DB_PATH" description:"directory of the database file, overrides config dsn"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	log.Printf("[INFO] starting newsread version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is done or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DBPath != "" {
		cfg.Database.DSN = "file:" + opts.DBPath + "/newsread.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.LLM.APIKey != "" {
		SetupLog(opts.Debug, cfg.LLM.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] close database: %v", err)
		}
	}()

	monitor := network.NewMonitor(ctx, network.DefaultChecker(cfg.Network.ProbeAddr, cfg.Network.ProbeTimeout),
		cfg.Network.CheckInterval)
	go monitor.Run(ctx)

	downloader := download.New(cfg.Download, cfg.Remote.UserAgent)
	go func() {
		if err := downloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[WARN] downloader stopped: %v", err)
		}
	}()

	coord := syncer.New(syncer.Params{
		Store:        service.NewStore(repos),
		Remote:       makeRemote(cfg),
		Connectivity: monitor,
		Downloader:   downloader,
		GracePeriod:  cfg.Sync.GracePeriod,
	})
	defer coord.Close()

	media := download.NewMediaScanner(cfg.Remote.Timeout, cfg.Remote.UserAgent)
	srv := server.New(cfg, coord, media, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeRemote returns the remote source for the configured mode
func makeRemote(cfg *config.Config) syncer.RemoteSource {
	if cfg.Remote.Mode == config.ModeDirect {
		log.Printf("[INFO] direct remote source, feeds %s, llm %s", cfg.Remote.FeedTemplate, cfg.LLM.Model)
		ext := cfg.GetExtractionConfig()
		return remote.NewDirect(cfg.Remote.FeedTemplate,
			feed.NewParser(cfg.Remote.Timeout, cfg.Remote.UserAgent),
			content.NewHTTPExtractor(ext.Timeout, ext.UserAgent, ext.MinTextLength),
			llm.NewSummarizer(cfg.GetLLMConfig()))
	}
	log.Printf("[INFO] scraper remote source %s", cfg.Remote.Endpoint)
	return remote.NewClient(cfg.Remote)
}

// SetupLog configures lgr and the standard logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
