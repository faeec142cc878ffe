package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/iver-wharf/wharf-apps/internal/flagtypes"
	"github.com/iver-wharf/wharf-apps/internal/pathutil"
	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainers"
	"github.com/iver-wharf/wharf-apps/pkg/containerrow"
	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	"github.com/iver-wharf/wharf-apps/pkg/environment"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/typ.v4/slices"
	v1 "k8s.io/api/core/v1"
)

const clearScreen = "\033[H\033[2J"

var containersFlags = struct {
	resourceType  application.ResourceType
	output        datatable.Format
	sortBy        string
	sortDesc      bool
	search        string
	pageSize      int
	page          int
	watch         bool
	serverMetrics environment.ServerMetricsMode
}{
	resourceType:  application.ResourceTypeDeployment,
	output:        datatable.FormatTable,
	serverMetrics: environment.ServerMetricsAuto,
}

var containersCmd = &cobra.Command{
	Use:   "containers [type] <name>",
	Short: "Lists the containers of an application",
	Long: `Lists the containers of all pods of an application, including init
containers, together with their status.

The application is given by name, optionally prefixed by its resource
type, similar to kubectl. The following are equivalent:

	wharf-apps containers my-app
	wharf-apps containers deployment my-app
	wharf-apps containers deploy/my-app
	wharf-apps containers my-app --type deployment

Sorting, search, and page size given by flags are remembered between runs.
They are stored in:

	~/.config/iver-wharf/wharf-apps/datatables.yml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resourceType, name, err := parseApplicationArgs(args, containersFlags.resourceType)
		if err != nil {
			return err
		}
		restConf, ns, err := loadKubeconfig(rootFlags.k8sOverrides)
		if err != nil {
			return err
		}
		loader, err := newLoader(restConf, serverMetricsMode(cmd.Flags()))
		if err != nil {
			return err
		}
		store, err := newSettingsStore()
		if err != nil {
			return err
		}
		state, err := resolveTableState(cmd.Flags(), store)
		if err != nil {
			return err
		}
		format := rootConfig.Containers.Output
		if cmd.Flags().Changed("output") {
			format = containersFlags.output
		}

		q, err := loader.Load(rootContext, appcontainers.Params{
			Namespace:    ns,
			Name:         name,
			ResourceType: resourceType,
		})
		if err != nil {
			return fmt.Errorf("load %s %q: %w", strings.ToLower(resourceType.String()), name, err)
		}

		printer := tablePrinter{
			w:      os.Stdout,
			format: format,
			state:  state,
			clear:  containersFlags.watch && format == datatable.FormatTable && !color.NoColor,
		}
		if !containersFlags.watch {
			return printer.print(q)
		}
		return newTableWatcher(loader.Fetcher, q, &printer).Run(rootContext)
	},
}

func init() {
	rootCmd.AddCommand(containersCmd)

	flags := containersCmd.Flags()
	flags.VarP(&containersFlags.resourceType, "type", "t", "Resource type of the application, used when not given as argument")
	containersCmd.RegisterFlagCompletionFunc("type", flagtypes.CompleteResourceType)
	flags.VarP(&containersFlags.output, "output", "o", "Output format (default from config, or \"table\")")
	containersCmd.RegisterFlagCompletionFunc("output", flagtypes.CompleteFormat)
	flags.StringVar(&containersFlags.sortBy, "sort", "", "ID of column to sort by")
	containersCmd.RegisterFlagCompletionFunc("sort", completeColumnID)
	flags.BoolVar(&containersFlags.sortDesc, "desc", false, "Sort in descending order")
	flags.StringVar(&containersFlags.search, "search", "", "Only show rows where any column contains this text, ignoring casing")
	flags.IntVar(&containersFlags.pageSize, "page-size", 0, "Number of rows per page, where 0 disables pagination")
	flags.IntVar(&containersFlags.page, "page", 1, "Page number to show, starting at 1")
	flags.BoolVarP(&containersFlags.watch, "watch", "w", false, "Keep printing the table as the pods change")
	flags.Var(&containersFlags.serverMetrics, "server-metrics", "Show CPU and memory columns: auto, enabled, or disabled (default from config, or \"auto\")")
	containersCmd.RegisterFlagCompletionFunc("server-metrics", flagtypes.CompleteServerMetricsMode)
}

// parseApplicationArgs accepts "NAME", "TYPE NAME", or "TYPE/NAME".
func parseApplicationArgs(args []string, fallback application.ResourceType) (application.ResourceType, string, error) {
	first, second := slices.SafeGet(args, 0), slices.SafeGet(args, 1)
	if second != "" {
		resourceType, err := application.ParseResourceType(first)
		return resourceType, second, err
	}
	if typeName, name, ok := strings.Cut(first, "/"); ok {
		resourceType, err := application.ParseResourceType(typeName)
		return resourceType, name, err
	}
	if first == "" {
		return application.ResourceTypeUnknown, "", errors.New("missing application name")
	}
	return fallback, first, nil
}

func serverMetricsMode(flags *pflag.FlagSet) environment.ServerMetricsMode {
	if flags.Changed("server-metrics") {
		return containersFlags.serverMetrics
	}
	return rootConfig.Containers.ServerMetrics
}

func newSettingsStore() (datatable.SettingsStore, error) {
	if rootConfig.Containers.SettingsFile == "" {
		path, err := datatable.DefaultSettingsPath()
		if err != nil {
			return datatable.SettingsStore{}, err
		}
		return datatable.NewSettingsStore(path), nil
	}
	path, err := pathutil.ExpandHome(rootConfig.Containers.SettingsFile)
	if err != nil {
		return datatable.SettingsStore{}, fmt.Errorf("expand containers.settingsFile: %w", err)
	}
	return datatable.NewSettingsStore(path), nil
}

// resolveTableState merges the stored table settings with the flags, and
// stores them again if any of the remembered flags were set.
func resolveTableState(flags *pflag.FlagSet, store datatable.SettingsStore) (datatable.State, error) {
	state, ok, err := store.Load(appcontainers.StorageKey)
	if err != nil {
		log.Warn().WithError(err).
			WithString("path", pathutil.ShorthandHome(store.Path())).
			Message("Failed to load table settings. Using defaults.")
	}
	if !ok {
		state = datatable.State{PageSize: rootConfig.Containers.PageSize}
	}

	changed := false
	if flags.Changed("sort") {
		if containersFlags.sortBy != "" && !isColumnID(containersFlags.sortBy) {
			return datatable.State{}, fmt.Errorf("invalid --sort column %q, must be one of: %s",
				containersFlags.sortBy, strings.Join(columnIDs(), ", "))
		}
		state.SortBy = containersFlags.sortBy
		changed = true
	}
	if flags.Changed("desc") {
		state.SortDesc = containersFlags.sortDesc
		changed = true
	}
	if flags.Changed("search") {
		state.Search = containersFlags.search
		changed = true
	}
	if flags.Changed("page-size") {
		state.PageSize = containersFlags.pageSize
		changed = true
	}
	state.Page = containersFlags.page
	if err := state.Validate(); err != nil {
		return datatable.State{}, err
	}

	if changed {
		if err := store.Save(appcontainers.StorageKey, state); err != nil {
			log.Warn().WithError(err).
				WithString("path", pathutil.ShorthandHome(store.Path())).
				Message("Failed to save table settings.")
		} else {
			log.Debug().WithString("path", pathutil.ShorthandHome(store.Path())).Message("Saved table settings.")
		}
	}
	return state, nil
}

func columnIDs() []string {
	return lo.Map(appcontainers.Columns(true), func(c datatable.Column[containerrow.Row], _ int) string {
		return c.ID
	})
}

func isColumnID(id string) bool {
	return lo.SomeBy(columnIDs(), func(columnID string) bool {
		return strings.EqualFold(columnID, id)
	})
}

func completeColumnID(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(appcontainers.Columns(true), func(c datatable.Column[containerrow.Row], _ int) string {
		return c.ID + "\t" + c.Header
	}), cobra.ShellCompDirectiveNoFileComp
}

// newTableWatcher returns a watcher that prints the table on every pod change,
// and prints it as loading while the pods are being listed again.
func newTableWatcher(fetcher application.Fetcher, q appcontainers.Query, printer *tablePrinter) appcontainers.Watcher {
	printQuery := func() {
		if err := printer.print(q); err != nil {
			log.Warn().WithError(err).Message("Failed to print containers table.")
		}
	}
	return appcontainers.Watcher{
		Fetcher:     fetcher,
		Application: q.Application,
		OnChange: func(pods []v1.Pod) {
			q.Pods = pods
			q.IsLoading = false
			printQuery()
		},
		OnReload: func() {
			q.IsLoading = true
			printQuery()
		},
	}
}

type tablePrinter struct {
	w      io.Writer
	format datatable.Format
	state  datatable.State
	clear  bool
	view   appcontainers.View
}

func (p *tablePrinter) print(q appcontainers.Query) error {
	if p.clear {
		fmt.Fprint(p.w, clearScreen)
	}
	return p.view.Table(q, p.state).Encode(p.w, p.format)
}
