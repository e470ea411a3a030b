// Package app wires the deploy pipeline together and drives it through its
// phases: configure, build, archive, upload, persist.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jgivc/uploader/internal/archive"
	"github.com/jgivc/uploader/internal/build"
	"github.com/jgivc/uploader/internal/config"
	"github.com/jgivc/uploader/internal/entity"
	"github.com/jgivc/uploader/internal/prompt"
	"github.com/jgivc/uploader/internal/upload"
)

type ConfigStore interface {
	Load() (*config.Config, bool, error)
	Save(cfg *config.Config) error
	EnsureIgnored() error
}

type Prompter interface {
	Ask(query, def string) (string, error)
}

type BuildRunner interface {
	Run(ctx context.Context, command string) entity.BuildResult
}

type Archiver interface {
	Create(root, dir string) (*entity.ArchiveInfo, error)
}

type Uploader interface {
	Upload(ctx context.Context, archivePath, domain, auth string) entity.UploadResult
}

type App struct {
	root     string
	store    ConfigStore
	prompt   Prompter
	runner   BuildRunner
	archiver Archiver
	uploader Uploader
	getenv   func(string) string
	out      io.Writer
	log      *slog.Logger
}

func New(root string, log *slog.Logger) *App {
	return &App{
		root:     root,
		store:    config.NewStore(root, log),
		prompt:   prompt.New(),
		runner:   build.NewRunner(root, log),
		archiver: archive.NewArchiver(log),
		uploader: upload.NewUploader(log),
		getenv:   os.Getenv,
		out:      os.Stdout,
		log:      log.With(slog.String("item", "App")),
	}
}

// Run executes one deploy. A returned error is fatal; recoverable phase
// failures are printed and handled here.
func (a *App) Run(ctx context.Context) error {
	cfg, persist, err := a.configure()
	if err != nil {
		return err
	}

	if cfg.BuildCommand != "" {
		fmt.Fprintf(a.out, "Running build command: %s\n", cfg.BuildCommand)
	}

	res := a.runner.Run(ctx, cfg.BuildCommand)
	if !res.Success() {
		if res.Err != nil {
			fmt.Fprintf(a.out, "Cannot run build command: %s\n", res.Err)
		} else {
			fmt.Fprintf(a.out, "Build failed with exit code %d\n", res.ExitCode)
		}
		fmt.Fprintln(a.out, "Build failed, exiting")

		return nil
	}
	fmt.Fprintln(a.out, "Build successful")

	info, err := a.archiver.Create(a.root, cfg.Directory)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Archive created: %s (%d files)\n", info.Path, info.FileCount)

	result := a.uploader.Upload(ctx, info.Path, cfg.Domain, cfg.Auth)
	switch {
	case result.Success():
		fmt.Fprintln(a.out, "Upload successful")
	case result.Err != nil:
		fmt.Fprintf(a.out, "Error uploading: %s\n", result.Err)
	default:
		fmt.Fprintf(a.out, "Upload failed: %d\n", result.StatusCode)
	}
	if result.CleanupErr != nil {
		fmt.Fprintf(a.out, "Error removing archive file: %s\n", result.CleanupErr)
	}

	if err := a.store.Save(persist); err != nil {
		return err
	}

	return a.store.EnsureIgnored()
}

// configure resolves the record the pipeline uses and the record that gets
// persisted. They differ only for values injected from the environment,
// which never end up in the config file.
func (a *App) configure() (*config.Config, *config.Config, error) {
	cfg, found, err := a.store.Load()
	if err != nil {
		return nil, nil, err
	}

	if found {
		fmt.Fprintf(a.out, "Config:\n%s\n", cfg)
	}
	firstRun := !found

	ask := func(query string, field *string) error {
		answer, err := a.prompt.Ask(query, *field)
		if err != nil {
			return err
		}
		*field = answer

		return nil
	}

	if firstRun || cfg.Directory == "" {
		if err := ask("Set the output directory:", &cfg.Directory); err != nil {
			return nil, nil, err
		}
	}

	if firstRun || cfg.BuildCommand == "" {
		if err := ask("Set the build command:", &cfg.BuildCommand); err != nil {
			return nil, nil, err
		}
	}

	persist := &config.Config{}

	if env := a.getenv(config.EnvDomain); env != "" {
		persist.Domain = cfg.Domain
		cfg.Domain = env
		a.log.Debug("Domain taken from environment")
	} else {
		if firstRun || cfg.Domain == "" {
			if err := ask("Set the domain:", &cfg.Domain); err != nil {
				return nil, nil, err
			}
		}
		persist.Domain = cfg.Domain
	}

	if env := a.getenv(config.EnvAuth); env != "" {
		persist.Auth = cfg.Auth
		cfg.Auth = env
		a.log.Debug("Auth key taken from environment")
	} else {
		if firstRun || cfg.Auth == "" {
			if err := ask("Set the authentication key:", &cfg.Auth); err != nil {
				return nil, nil, err
			}
		}
		persist.Auth = cfg.Auth
	}

	cfg.NormalizeDomain()

	persist.BuildCommand = cfg.BuildCommand
	persist.Directory = cfg.Directory
	persist.NormalizeDomain()

	return cfg, persist, nil
}
