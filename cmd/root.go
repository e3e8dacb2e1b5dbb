// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podgraph/podgraph/internal/build"
)

// NewRootCommand enables all children commands to read flags from CLI
// flags, environment variables prefixed with PODGRAPH, or config.yaml (in
// that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PODGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/podgraph", "$HOME/.podgraph", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}
	_ = viper.ReadInConfig()

	return &cobra.Command{
		Use:     "podgraph",
		Version: build.Version,
		Short:   "Resolve effective access to Solid resources under the Access Control Policy scheme",
		Long: `podgraph reads RDF resource descriptions and resolves the effective
access modes an agent holds on a resource under the Access Control Policy
(ACP) scheme: it discovers a resource's access control resource, evaluates
its policies and matchers, and folds the allowed and denied modes into one
result.`,
	}
}
