package flagtypes

import (
	"strings"

	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	"github.com/iver-wharf/wharf-apps/pkg/environment"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// CompleteResourceType returns completions for the application.ResourceType
// flag type.
func CompleteResourceType(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(application.ResourceTypes, func(t application.ResourceType, _ int) string {
		return strings.ToLower(t.String()) + "\t" + t.String() + " applications"
	}), cobra.ShellCompDirectiveNoFileComp
}

// CompleteFormat returns completions for the datatable.Format flag type.
func CompleteFormat(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(datatable.FormatTable) + "\tAligned text columns (default)",
		string(datatable.FormatJSON) + "\tJSON array of rows",
		string(datatable.FormatYAML) + "\tYAML sequence of rows",
	}, cobra.ShellCompDirectiveNoFileComp
}

// CompleteServerMetricsMode returns completions for the
// environment.ServerMetricsMode flag type.
func CompleteServerMetricsMode(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(environment.ServerMetricsAuto) + "\tShow CPU and memory if the cluster serves " + environment.MetricsAPIGroup + " (default)",
		string(environment.ServerMetricsEnabled) + "\tAlways show CPU and memory",
		string(environment.ServerMetricsDisabled) + "\tNever show CPU and memory",
	}, cobra.ShellCompDirectiveNoFileComp
}
