package main

import (
	"fmt"
	"os"

	"github.com/kenzie-cloud/portal/internal/admin"
	"github.com/kenzie-cloud/portal/internal/api"
	"github.com/kenzie-cloud/portal/internal/config"
	"github.com/kenzie-cloud/portal/internal/portal"
	"github.com/kenzie-cloud/portal/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", os.Getenv("KENZIE_CONFIG"), "Path to a YAML, TOML or JSON config file")
	cmd.Flags().Int("port", config.DefaultPort, "HTTP listen port (overrides PORT)")
	cmd.Flags().String("seed-file", "", "Path to JSON fixture for initial state")
	cmd.Flags().Bool("verbose", false, "Enable request logging")
}

// resolveConfig loads file and environment configuration, then applies
// flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("seed-file") {
		cfg.SeedFile, _ = cmd.Flags().GetString("seed-file")
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newServer wires the store, API and admin handlers onto a portal server.
func newServer(cfg *config.Config) (*portal.Server, error) {
	srv := portal.New(&portal.Config{
		Name:    "kenzie-portal",
		Port:    cfg.Port,
		Verbose: cfg.Verbose,
	})
	memStore := store.New()

	if cfg.SeedFile != "" {
		data, err := os.ReadFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
		if err := memStore.Seed(data); err != nil {
			return nil, err
		}
		srv.Logger.Info("loaded seed data", "file", cfg.SeedFile)
	}

	apiHandler := api.NewHandler(memStore, api.Options{
		AdminToken: cfg.AdminToken,
		Clock:      memStore.Clock,
		Logger:     srv.Logger,
		Registerer: srv.Metrics.Registry,
	})
	apiHandler.Routes(srv.Router)

	adminHandler := admin.NewHandler(memStore, srv.Middleware(), memStore.Clock, cfg.AdminToken)
	adminHandler.Routes(srv.Router)

	return srv, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	srv, err := newServer(cfg)
	if err != nil {
		return err
	}
	srv.Logger.Info("kenzie-portal ready", "port", cfg.Port, "version", version)
	return srv.Serve()
}
