// Package run contains the command to run a podgraph access server.
package run

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/podgraph/podgraph/internal/build"
	"github.com/podgraph/podgraph/pkg/logger"
	"github.com/podgraph/podgraph/pkg/nquads"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/server"
	"github.com/podgraph/podgraph/pkg/storage"
	"github.com/podgraph/podgraph/pkg/storage/httpstore"
	"github.com/podgraph/podgraph/pkg/storage/memory"
)

// NewRunCommand serves the access query API over HTTP.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve the access query API over HTTP",
		RunE:  run,
		Args:  cobra.NoArgs,
	}

	flags := cmd.Flags()
	flags.String("http-addr", ":8080", "listen address of the HTTP API")
	flags.StringSlice("cors-allowed-origins", []string{"*"}, "origins allowed by CORS")
	flags.Int("list-concurrency", 0, "bound on concurrent per-agent evaluation")
	flags.Duration("fetch-retry-elapsed", 3*time.Second, "total time budget for retrying upstream fetches")
	flags.String("acr-file", "", "N-Quads file holding the access control resource (offline mode)")
	flags.String("acr-subject", "", "absolute IRI of the access control resource in --acr-file")
	flags.String("resource", "", "absolute IRI of the resource governed by --acr-file")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("log-level", "info", "log level (none, debug, info, warn, error, fatal)")

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	log := logger.MustNewLogger(viper.GetString("log-format"), viper.GetString("log-level"))
	log.Info("starting podgraph",
		zap.String("version", build.Version),
		zap.String("commit", build.Commit))

	store, err := buildStore(log)
	if err != nil {
		return err
	}

	srv := server.New(store, log, server.Config{
		Addr:               viper.GetString("http-addr"),
		CORSAllowedOrigins: viper.GetStringSlice("cors-allowed-origins"),
		ListConcurrency:    viper.GetInt("list-concurrency"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// buildStore returns the resource store the server should run against: an
// HTTP store over the upstream pod by default, or a memory store serving a
// local N-Quads access control resource.
func buildStore(log logger.Logger) (storage.ResourceStore, error) {
	acrFile := viper.GetString("acr-file")
	if acrFile == "" {
		return httpstore.New(
			httpstore.WithLogger(log),
			httpstore.WithMaxRetryElapsed(viper.GetDuration("fetch-retry-elapsed")),
		), nil
	}

	acrSubject, err := rdf.ParseIRI(viper.GetString("acr-subject"))
	if err != nil {
		return nil, fmt.Errorf("acr-subject: %w", err)
	}
	resource, err := rdf.ParseIRI(viper.GetString("resource"))
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}

	f, err := os.Open(acrFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dataset, err := nquads.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", acrFile, err)
	}

	store := memory.New()
	store.Put(resource, rdf.NewDataset())
	store.Put(acrSubject, dataset)
	store.LinkACR(resource, acrSubject)
	return store, nil
}
