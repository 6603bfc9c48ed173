package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VictorTPhan/ella-app/internal/app"
	"github.com/VictorTPhan/ella-app/internal/content"
	"github.com/VictorTPhan/ella-app/internal/gateway"
	"github.com/VictorTPhan/ella-app/internal/llm"
	"github.com/VictorTPhan/ella-app/internal/logging"
	"github.com/VictorTPhan/ella-app/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	log, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		EventRepo: eventRepo,
		Logger:    log,
	}
	opts.SkipWelcome, _ = cmd.Flags().GetBool("skip-welcome")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg, found := llm.Discover(cfg)

	var provider llm.Provider
	switch {
	case cfg.Provider == "mock":
		provider = llm.Wrap(content.NewDemoProvider(), cfg, eventRepo, log)
	case !found:
		err = cfg.Validate()
	default:
		provider, err = llm.NewProvider(ctx, cfg, eventRepo, log)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The game will be unavailable.")
		log.Warn("llm provider not configured", zap.Error(err))
	} else {
		log.Info("llm provider ready",
			zap.String("provider", cfg.Provider),
			zap.String("model", provider.ModelID()))
		opts.Generator = gateway.New(provider, gateway.FromConfig(cfg)...)
	}

	return app.Run(opts)
}

// loadConfig layers defaults, the config file and ELLA_* env vars.
func loadConfig(cmd *cobra.Command) (llm.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = llm.DefaultConfigPath(); err != nil {
			return llm.Config{}, err
		}
	}
	cfg, err := llm.LoadFile(llm.DefaultConfig(), path)
	if err != nil {
		return cfg, err
	}
	return llm.ApplyEnv(cfg), nil
}

// openLogger opens the process log. The TUI owns stdout, so logs go to a
// file.
func openLogger(cmd *cobra.Command) (*zap.Logger, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		dir, err := store.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		path = logging.DefaultPath(dir)
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	debug, _ := cmd.Flags().GetBool("debug")
	return logging.New(path, debug)
}
