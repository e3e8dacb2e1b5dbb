package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podgraph/podgraph/pkg/acp"
	"github.com/podgraph/podgraph/pkg/logger"
	"github.com/podgraph/podgraph/pkg/nquads"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/server/commands"
	"github.com/podgraph/podgraph/pkg/storage"
	"github.com/podgraph/podgraph/pkg/storage/httpstore"
	"github.com/podgraph/podgraph/pkg/storage/memory"
)

// NewCheckCommand resolves one agent's effective access to one resource.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve an agent's effective access to a resource",
		RunE:  runCheck,
		Args:  cobra.NoArgs,
	}

	flags := cmd.Flags()
	flags.String("resource", "", "absolute IRI of the resource to check")
	flags.String("agent", "", "absolute IRI of the agent to check for")
	addStoreFlags(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	log := logger.MustNewLogger(viper.GetString("log-format"), viper.GetString("log-level"))

	store, err := buildStore(log)
	if err != nil {
		return err
	}

	query := commands.NewCheckQuery(store, log)
	resp, err := query.Execute(cmd.Context(), &commands.CheckRequest{
		Resource: viper.GetString("resource"),
		Agent:    viper.GetString("agent"),
	})
	if err != nil {
		if errors.Is(err, acp.ErrNoAccessControlResource) {
			return fmt.Errorf("no access control resource: %w", err)
		}
		return err
	}

	return printJSON(resp)
}

// addStoreFlags registers the flags shared by the check and access
// commands: logging, plus the offline-mode pair that evaluates a local
// N-Quads file as the access control resource instead of going over HTTP.
func addStoreFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("acr-file", "", "N-Quads file holding the access control resource (offline mode)")
	flags.String("acr-subject", "", "absolute IRI of the access control resource in --acr-file")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("log-level", "warn", "log level (none, debug, info, warn, error, fatal)")
}

// buildStore returns the resource store the query should run against: an
// HTTP store by default, or a memory store loaded from --acr-file.
func buildStore(log logger.Logger) (storage.ResourceStore, error) {
	acrFile := viper.GetString("acr-file")
	if acrFile == "" {
		return httpstore.New(httpstore.WithLogger(log)), nil
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

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
