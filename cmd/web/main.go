package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/promo-atlas/pkg/server"
	"github.com/de-tools/promo-atlas/pkg/services/aliases"
	"github.com/de-tools/promo-atlas/pkg/services/normalizer"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/de-tools/promo-atlas/pkg/services/session"
	"github.com/de-tools/promo-atlas/pkg/services/views"
	"github.com/de-tools/promo-atlas/pkg/store/csvstore"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	aliasPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Promo Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&dataDir, "data", "d", "data",
		"Directory holding the source CSV files")
	rootCmd.Flags().StringVarP(&aliasPath, "aliases", "a", "",
		"Path to an alias map YAML file (built-in defaults when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	aliasMap := aliases.Default()
	if aliasPath != "" {
		var err error
		aliasMap, err = aliases.LoadFile(aliasPath)
		if err != nil {
			return fmt.Errorf("failed to load alias map: %w", err)
		}
		logger.Info().Str("path", aliasPath).Msg("alias map loaded")
	}

	source := csvstore.New(dataDir, nil)
	reg := registry.New(source, normalizer.New(aliasMap))
	sessions := session.NewManager(reg, session.DefaultDimensions())
	builder := views.NewBuilder(reg)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Registry: reg,
			Sessions: sessions,
			Views:    builder,
			Logger:   logger,
		},
	})

	return api.Start()
}
