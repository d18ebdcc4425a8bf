package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-ebics/internal/config"
	"github.com/sirosfoundation/go-ebics/internal/registry"
	"github.com/sirosfoundation/go-ebics/internal/storage"
	"github.com/sirosfoundation/go-ebics/internal/storage/boltdb"
	"github.com/sirosfoundation/go-ebics/internal/storage/file"
	"github.com/sirosfoundation/go-ebics/internal/storage/mongodb"
	"github.com/sirosfoundation/go-ebics/pkg/ebics"
	"github.com/sirosfoundation/go-ebics/pkg/keys"
	"github.com/sirosfoundation/go-ebics/pkg/trace"
)

// app is the dependency graph shared by subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    storage.Store
	registry *registry.Registry
	client   *ebics.Client
	out      io.Writer
}

var (
	configPath string
	userID     string
	traceDir   string
	appCtx     *app
)

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ebicsctl",
		Short:         "EBICS H004 client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.store.Close(context.WithoutCancel(cmd.Context()))
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default: built-in defaults)")
	root.PersistentFlags().StringVarP(&userID, "user", "u", "", "EBICS user id")
	root.PersistentFlags().StringVar(&traceDir, "trace-dir", "", "write every exchanged document to this directory")

	root.AddCommand(
		createUserCmd(), usersCmd(),
		iniCmd(), hiaCmd(), hpbCmd(), letterCmd(), sprCmd(),
		versionsCmd(), orderTypesCmd(),
		uploadCmd(), downloadCmd(),
	)
	return root
}

func newApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if traceDir != "" {
		cfg.Trace.Dir = traceDir
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpsConfig, err := cfg.Transport()
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}
	httpsConfig.Logger = logger

	var tracer ebics.Tracer
	switch {
	case cfg.Trace.Dir != "":
		if tracer, err = trace.NewDir(cfg.Trace.Dir, logger); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
	case cfg.Trace.Log:
		tracer = trace.NewLogger(logger)
	}

	client, err := ebics.NewClient(&ebics.ClientConfig{
		HTTPSConfig: httpsConfig,
		Tracer:      tracer,
		Logger:      logger,
	})
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		registry: registry.New(store, logger),
		client:   client,
		out:      out,
	}, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "bolt":
		return boltdb.Open(cfg.Storage.Path)
	case "mongodb":
		return mongodb.NewStore(ctx, &mongodb.Config{
			URI:        cfg.Storage.MongoDB.URI,
			Database:   cfg.Storage.MongoDB.Database,
			Collection: cfg.Storage.MongoDB.Collection,
		})
	default:
		return file.NewStore(cfg.Storage.Path)
	}
}

// secrets returns the passphrase provider named in the configuration.
func (a *app) secrets() (keys.SecretProvider, error) {
	pass := os.Getenv(a.cfg.Secret.Env)
	if pass == "" {
		return nil, fmt.Errorf("passphrase required: set $%s", a.cfg.Secret.Env)
	}
	return keys.StaticSecret(pass), nil
}

func requireUser() error {
	if userID == "" {
		return fmt.Errorf("user id required (--user)")
	}
	return nil
}

// session loads the user with its private keys and opens a session with
// the configured protocol settings.
func (a *app) session(ctx context.Context, opts ...ebics.SessionOption) (*ebics.Session, error) {
	if err := requireUser(); err != nil {
		return nil, err
	}
	secrets, err := a.secrets()
	if err != nil {
		return nil, err
	}
	user, err := a.registry.LoadUser(ctx, userID, secrets)
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", userID, err)
	}
	opts = append([]ebics.SessionOption{
		ebics.WithConfig(a.cfg.EBICS()),
		ebics.WithProduct(a.cfg.Product.Name, a.cfg.Product.Language),
	}, opts...)
	return ebics.NewSession(user, opts...), nil
}
