// main package for the preset generator
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/book-expert/logger"
	"github.com/bretbouchard/choral-v2/internal/catalog"
	"github.com/bretbouchard/choral-v2/internal/config"
	"github.com/bretbouchard/choral-v2/internal/core"
	"github.com/bretbouchard/choral-v2/internal/generator"
	"github.com/bretbouchard/choral-v2/internal/notify"
	"github.com/bretbouchard/choral-v2/internal/objectstore"
	"github.com/bretbouchard/choral-v2/internal/preset"
	"github.com/nats-io/nats.go"
)

// Flag names.
const (
	flagConfig = "config"
	flagShared = "shared"
	flagOutput = "output"
)

// Flag descriptions.
const (
	flagConfigDesc = "Path to a TOML configuration file (defaults to built-in settings)"
	flagSharedDesc = "Load configuration through the central configurator"
	flagOutputDesc = "Existing directory to write presets to (overrides output.dir)"
)

// File names and console text.
const (
	bootstrapLogFileName = "preset-gen-bootstrap.log"
	logFileName          = "preset-gen.log"
	logsDirPermissions   = 0o750
	bannerText           = "Generating Choir V2.0 Factory Presets..."
	locationText         = "\nLocation: %s\n"
)

var (
	errConflictingConfig = errors.New("cannot use both -config and -shared")
	separator            = strings.Repeat("=", 70)
)

// appFlags holds the parsed command-line flag values.
type appFlags struct {
	config string
	shared bool
	output string
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "preset-gen exited with error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses args into appFlags.
func parseFlags(args []string) (appFlags, error) {
	var flags appFlags

	flagSet := flag.NewFlagSet("preset-gen", flag.ContinueOnError)
	flagSet.StringVar(&flags.config, flagConfig, "", flagConfigDesc)
	flagSet.BoolVar(&flags.shared, flagShared, false, flagSharedDesc)
	flagSet.StringVar(&flags.output, flagOutput, "", flagOutputDesc)

	err := flagSet.Parse(args)
	if err != nil {
		return appFlags{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	if flags.config != "" && flags.shared {
		return appFlags{}, errConflictingConfig
	}

	return flags, nil
}

func setupLogger(logPath, fileName string) (*logger.Logger, error) {
	err := os.MkdirAll(logPath, logsDirPermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logPath, err)
	}

	log, err := logger.New(logPath, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func loadConfig(flags appFlags, log *logger.Logger) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if flags.shared {
		cfg, err = config.LoadShared(log)
	} else {
		cfg, err = config.Load(flags.config)
	}

	if err != nil {
		return nil, err
	}

	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}

	return cfg, nil
}

// run is the application entry point, returning an error on failure.
func run(args []string, stdout io.Writer) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	// 1. Create a temporary logger for the bootstrap process
	bootstrapLog, err := setupLogger(os.TempDir(), bootstrapLogFileName)
	if err != nil {
		return err
	}

	defer func() {
		closeErr := bootstrapLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing bootstrap logger: %v\n", closeErr)
		}
	}()

	// 2. Load configuration
	cfg, err := loadConfig(flags, bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 3. Initialize the final logger based on the loaded configuration
	finalLog, err := setupLogger(cfg.Paths.BaseLogsDir, logFileName)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return err
	}

	defer func() {
		closeErr := finalLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing final logger: %v\n", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return generate(ctx, cfg, finalLog, stdout)
}

// generate wires the store, catalog and generator together and runs the batch.
func generate(ctx context.Context, cfg *config.Config, log *logger.Logger, stdout io.Writer) error {
	policy, err := generator.ParseCollisionPolicy(cfg.Output.CollisionPolicy)
	if err != nil {
		return err
	}

	entries, err := assembleCatalog(cfg)
	if err != nil {
		log.Error("Failed to assemble catalog: %v", err)

		return err
	}

	dest, err := openTarget(cfg)
	if err != nil {
		log.Error("Failed to open preset store: %v", err)

		return err
	}
	defer dest.close()

	builder := preset.NewBuilder(core.SystemClock{}, preset.Authoring{
		Author:        cfg.Metadata.Author,
		Version:       cfg.Metadata.Version,
		PluginVersion: cfg.Metadata.PluginVersion,
	})
	writer, err := generator.NewWriter(dest.store, stdout, log)
	if err != nil {
		return err
	}

	var publisher core.EventPublisher
	if dest.publisher != nil {
		publisher = dest.publisher
	}

	gen, err := generator.New(builder, writer, publisher, policy, log)
	if err != nil {
		return err
	}

	log.System("Preset generator started: %d presets, destination %s", len(entries), dest.location)
	fmt.Fprintln(stdout, bannerText)
	fmt.Fprintln(stdout, separator)

	summary, err := gen.Run(ctx, entries)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if dest.publisher != nil {
		err = dest.publisher.Flush(ctx)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(stdout, separator)

	err = summary.Print(stdout)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, locationText, dest.location)

	return nil
}

func assembleCatalog(cfg *config.Config) ([]catalog.Entry, error) {
	themes, err := catalog.Factory()
	if err != nil {
		return nil, err
	}

	if cfg.Catalog.ExtraDir != "" {
		extra, err := catalog.LoadDir(cfg.Catalog.ExtraDir)
		if err != nil {
			return nil, err
		}

		themes = append(themes, extra...)
	}

	return catalog.Assemble(themes...), nil
}

// target is the opened destination of a run.
type target struct {
	store     core.ObjectStore
	publisher *notify.Publisher
	location  string
	close     func()
}

func openTarget(cfg *config.Config) (*target, error) {
	if cfg.NATS.URL == "" {
		store, err := objectstore.NewDir(cfg.Output.Dir)
		if err != nil {
			return nil, err
		}

		return &target{store: store, publisher: nil, location: store.Dir(), close: func() {}}, nil
	}

	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}

	jetstreamContext, err := natsConnection.JetStream()
	if err != nil {
		natsConnection.Close()

		return nil, fmt.Errorf("failed to open JetStream context: %w", err)
	}

	store, err := objectstore.NewNats(jetstreamContext, cfg.NATS.ObjectStoreBucket)
	if err != nil {
		natsConnection.Close()

		return nil, err
	}

	var publisher *notify.Publisher

	if cfg.NATS.PresetGeneratedSubject != "" {
		publisher, err = notify.NewPublisher(natsConnection, cfg.NATS.PresetGeneratedSubject, store.Bucket())
		if err != nil {
			natsConnection.Close()

			return nil, err
		}
	}

	return &target{
		store:     store,
		publisher: publisher,
		location:  "nats object store bucket " + store.Bucket(),
		close:     natsConnection.Close,
	}, nil
}
