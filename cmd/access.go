package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podgraph/podgraph/pkg/acp"
	"github.com/podgraph/podgraph/pkg/logger"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/server/commands"
)

// NewAccessCommand lists the effective access of every agent known to a
// resource's access control resource.
func NewAccessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "List every known agent's effective access to a resource",
		RunE:  runAccess,
		Args:  cobra.NoArgs,
	}

	flags := cmd.Flags()
	flags.String("resource", "", "absolute IRI of the resource to list access for")
	flags.Int("list-concurrency", 0, "bound on concurrent per-agent evaluation")
	addStoreFlags(cmd)

	return cmd
}

func runAccess(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	log := logger.MustNewLogger(viper.GetString("log-format"), viper.GetString("log-level"))

	store, err := buildStore(log)
	if err != nil {
		return err
	}

	opts := []commands.ListAccessOption{}
	if n := viper.GetInt("list-concurrency"); n > 0 {
		opts = append(opts, commands.WithListConcurrency(n))
	}

	query := commands.NewListAccessQuery(store, log, opts...)
	resp, err := query.Execute(cmd.Context(), &commands.ListAccessRequest{
		Resource: viper.GetString("resource"),
	})
	if err != nil {
		return err
	}

	out := struct {
		Resource rdf.IRI                    `json:"resource"`
		Access   map[string]acp.AccessModes `json:"access"`
	}{Resource: resp.Resource, Access: map[string]acp.AccessModes{}}
	for agent, modes := range resp.Access {
		out.Access[string(agent)] = modes
	}
	return printJSON(out)
}
