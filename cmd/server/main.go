package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/konstantinfoerster/deck-diff-go/internal/api"
	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/konstantinfoerster/deck-diff-go/internal/catalog"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/konstantinfoerster/deck-diff-go/internal/deck"
	logger "github.com/konstantinfoerster/deck-diff-go/internal/log"
	"github.com/konstantinfoerster/deck-diff-go/internal/stats"
	"github.com/konstantinfoerster/deck-diff-go/internal/timer"
	"github.com/rs/zerolog/log"
)

// set via -ldflags "-X main.version=..."
var version = "0.1.0"

const defaultConfigPath = "./configs/application.yaml"

const usage = `Usage: deck-diff-server [options...]
  -c, --config path to the configuration file (default: ./configs/application.yaml)
  -a, --addr listen address, overrides the configuration file (default: 127.0.0.1:5678)
  -f, --file path to a local catalog dataset, has precedence over the url flag or configuration file
  -u, --url catalog dataset download url (only json and zip is supported)
  -h, --help prints help information
`

func setup() (*config.Config, error) {
	logger.SetupConsoleLogger()

	var configPath string
	var addr string
	var file string
	var downloadURL string

	flag.StringVar(&configPath, "c", defaultConfigPath, "path to the configuration file")
	flag.StringVar(&configPath, "config", defaultConfigPath, "path to the configuration file")
	flag.StringVar(&addr, "a", "", "listen address")
	flag.StringVar(&addr, "addr", "", "listen address")
	flag.StringVar(&file, "f", "", "path to a local catalog dataset")
	flag.StringVar(&file, "file", "", "path to a local catalog dataset")
	flag.StringVar(&downloadURL, "u", "", "catalog dataset download url")
	flag.StringVar(&downloadURL, "url", "", "catalog dataset download url")
	flag.Usage = func() { fmt.Print(usage) }
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		if configPath != defaultConfigPath || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Warn().Msgf("No configuration file found at %s, using defaults", configPath)
		cfg = &config.Config{}
	}

	if err := logger.Setup(cfg.Logging.Format, cfg.Logging.LevelOrDefault()); err != nil {
		return nil, err
	}

	if addr != "" {
		cfg.HTTP.Address = addr
	}
	if file != "" {
		cfg.Catalog.File = file
	}
	if downloadURL != "" {
		cfg.Catalog.DownloadURL = downloadURL
	}

	log.Info().Msgf("Version\t %s", version)
	log.Info().Msgf("OS\t\t %s", runtime.GOOS)
	log.Info().Msgf("ARCH\t\t %s", runtime.GOARCH)
	log.Info().Msgf("CPUs\t\t %d", runtime.NumCPU())

	return cfg, nil
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*cards.Catalog, error) {
	defer timer.Track("catalog load")()

	c, err := catalog.Open(ctx, cfg, &http.Client{})
	if err != nil {
		return nil, err
	}
	stats.LogCatalogLoaded(c.CardCount(), c.Len())

	return c, nil
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}

	log.Info().Msg("Server stopped")
}

func run() error {
	cfg, err := setup()
	if err != nil {
		return fmt.Errorf("failed to setup server %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := loadCatalog(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load card catalog %w", err)
	}

	srv := api.NewServer(cfg.HTTP, api.NewHandler(c, deck.NewResolver(c), version))

	return srv.Run(ctx)
}
