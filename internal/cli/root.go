// Package cli implements the deckdiff command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
	"github.com/konstantinfoerster/deck-diff-go/internal/catalog"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/konstantinfoerster/deck-diff-go/internal/deck"
	logger "github.com/konstantinfoerster/deck-diff-go/internal/log"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./configs/application.yaml"

// ErrDecksDiffer is returned by diff --exit-code if the decks are not equal.
var ErrDecksDiffer = errors.New("decks differ")

// CatalogOpener loads the card catalog for the given configuration.
type CatalogOpener func(ctx context.Context, cfg *config.Config) (*cards.Catalog, error)

func openCatalog(ctx context.Context, cfg *config.Config) (*cards.Catalog, error) {
	return catalog.Open(ctx, cfg, &http.Client{})
}

type options struct {
	configPath  string
	catalogFile string
	json        bool
	noColor     bool
}

// NewRootCmd creates the deckdiff command with all subcommands registered.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, openCatalog)
}

func newRootCmd(version string, opener CatalogOpener) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "deckdiff",
		Short:         "Resolve and compare deck lists against a card catalog",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the configuration file")
	root.PersistentFlags().StringVarP(&opts.catalogFile, "catalog", "f", "",
		"path to a local catalog dataset, has precedence over the configuration file")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print the result as json")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newResolveCmd(opts, opener))
	root.AddCommand(newDiffCmd(opts, opener))
	root.AddCommand(newStatsCmd(opts, opener))

	return root
}

func newResolveCmd(opts *options, opener CatalogOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <deck-file>",
		Short: "Parse a deck list and resolve its cards",
		Long:  "Parse a deck list and resolve its cards. Use - to read the deck list from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDeck(cmd, args[0])
			if err != nil {
				return err
			}
			resolver, err := newResolver(cmd.Context(), opts, opener)
			if err != nil {
				return err
			}

			result := resolver.Resolve(text)
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			newPrinter(cmd.OutOrStdout(), opts.noColor).printResolve(result)

			return nil
		},
	}
}

func newDiffCmd(opts *options, opener CatalogOpener) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "diff <old-deck-file> <new-deck-file>",
		Short: "Compare two deck lists",
		Long:  "Compare two deck lists by card name. Use - for one of the files to read it from stdin.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" && args[1] == "-" {
				return fmt.Errorf("only one deck list can be read from stdin")
			}
			oldText, err := readDeck(cmd, args[0])
			if err != nil {
				return err
			}
			newText, err := readDeck(cmd, args[1])
			if err != nil {
				return err
			}
			resolver, err := newResolver(cmd.Context(), opts, opener)
			if err != nil {
				return err
			}

			result := resolver.Diff(oldText, newText)
			if opts.json {
				err = writeJSON(cmd.OutOrStdout(), result)
			} else {
				newPrinter(cmd.OutOrStdout(), opts.noColor).printDiff(result)
			}
			if err != nil {
				return err
			}

			if exitCode && result.HasChanges() {
				return ErrDecksDiffer
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with 1 if the decks differ")

	return cmd
}

func newStatsCmd(opts *options, opener CatalogOpener) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats <deck-file>",
		Short: "Summarize a deck list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDeck(cmd, args[0])
			if err != nil {
				return err
			}
			resolver, err := newResolver(cmd.Context(), opts, opener)
			if err != nil {
				return err
			}

			s := resolver.Resolve(text).Stats()
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			newPrinter(cmd.OutOrStdout(), opts.noColor).printStats(s, top)

			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "number of categories to show, negative shows all")

	return cmd
}

func newResolver(ctx context.Context, opts *options, opener CatalogOpener) (*deck.Resolver, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	c, err := opener(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load card catalog %w", err)
	}

	return deck.NewResolver(c), nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if opts.configPath != defaultConfigPath || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &config.Config{}
	}

	if err := logger.SetLogLevel(cfg.Logging.LevelOrDefault()); err != nil {
		return nil, err
	}
	if opts.catalogFile != "" {
		if cfg.Catalog.SourceOrDefault() == config.SourcePostgres {
			return nil, fmt.Errorf("--catalog can't be used with source %s %w", config.SourcePostgres,
				catalog.ErrFileNotSupported)
		}
		cfg.Catalog.File = opts.catalogFile
	}
	log.Debug().Msgf("Using catalog source %s", cfg.Catalog.SourceOrDefault())

	return cfg, nil
}

// readDeck reads the deck list at path, - reads stdin.
func readDeck(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read deck list from stdin %w", err)
		}

		return string(b), nil
	}

	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read deck list %w", err)
	}

	return string(b), nil
}
