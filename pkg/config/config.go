package config

import (
	"fmt"
	"os"

	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	"github.com/iver-wharf/wharf-apps/pkg/environment"
	"github.com/iver-wharf/wharf-core/v2/pkg/config"
)

// Config holds all configurable settings for wharf-apps.
//
// The config is read in the following order:
//
// 1. File: ~/.config/iver-wharf/wharf-apps/wharf-apps-config.yml
//
// 2. File: ./.wharf-apps-config.yml
//
// 3. File from environment variable: WHARF_APPS_CONFIG
//
// 4. Environment variables, prefixed with WHARF_APPS
//
// Each inner struct is represented as a deeper field in the different
// configurations. For YAML they represent deeper nested maps. For environment
// variables they are joined together by underscores.
//
// All environment variables must be uppercased, while YAML files are
// case-insensitive. Keeping camelCasing in YAML config files is recommended
// for consistency.
type Config struct {
	K8s        K8sConfig
	Containers ContainersConfig
	HTTP       HTTPConfig
}

// K8sConfig holds settings for talking to Kubernetes.
type K8sConfig struct {
	// Context is the kubeconfig context used when talking to Kubernetes.
	// Empty means the current context.
	Context string

	// Namespace is the Kubernetes namespace to look for applications in when
	// none is given. Empty means the kubeconfig context's namespace.
	Namespace string
}

// ContainersConfig holds settings for the application containers table.
type ContainersConfig struct {
	// ServerMetrics decides if CPU and memory columns are shown.
	//
	// "auto"
	//   Shows the columns if the cluster serves the metrics.k8s.io API.
	//
	// "enabled"
	//   Always shows the columns.
	//
	// "disabled"
	//   Never shows the columns.
	ServerMetrics environment.ServerMetricsMode

	// Output is the default output format of the containers command. One of
	// "table", "json", or "yaml".
	Output datatable.Format

	// PageSize is the default number of rows per page. Zero disables
	// pagination. Only used when no page size has been saved in the
	// datatable settings file.
	PageSize int

	// SettingsFile is the path to the file where datatable sorting, search,
	// and page size are persisted. Defaults to
	// ~/.config/iver-wharf/wharf-apps/datatables.yml.
	SettingsFile string
}

// HTTPConfig holds settings for the HTTP server.
type HTTPConfig struct {
	CORS CORSConfig

	// BindAddress is the IP-address and port, separated by a colon, to bind
	// the HTTP server to. An IP-address of 0.0.0.0 will bind to all
	// IP-addresses.
	BindAddress string
}

// CORSConfig holds settings for the HTTP server's CORS settings.
type CORSConfig struct {
	// AllowAllOrigins enables CORS and allows all hostnames and URLs in the
	// HTTP request origins when set to true. Practically speaking, this
	// results in the HTTP header "Access-Control-Allow-Origin" set to "*".
	AllowAllOrigins bool

	// AllowOrigins enables CORS and allows the list of origins in the
	// HTTP request origins when set. Practically speaking, this
	// results in the HTTP header "Access-Control-Allow-Origin".
	AllowOrigins []string
}

// DefaultConfig is the hard-coded default values for wharf-apps's configs.
var DefaultConfig = Config{
	Containers: ContainersConfig{
		ServerMetrics: environment.ServerMetricsAuto,
		Output:        datatable.FormatTable,
	},
	HTTP: HTTPConfig{
		CORS: CORSConfig{
			AllowAllOrigins: false,
			AllowOrigins:    []string{},
		},
		BindAddress: "0.0.0.0:5010",
	},
}

// LoadConfig looks for, parses and validates the config and returns it as a
// Config object.
func LoadConfig() (Config, error) {
	cfgBuilder := config.NewBuilder(DefaultConfig)

	cfgBuilder.AddConfigYAMLFile("~/.config/iver-wharf/wharf-apps/wharf-apps-config.yml")
	cfgBuilder.AddConfigYAMLFile(".wharf-apps-config.yml")
	if cfgFile, ok := os.LookupEnv("WHARF_APPS_CONFIG"); ok {
		cfgBuilder.AddConfigYAMLFile(cfgFile)
	}
	cfgBuilder.AddEnvironmentVariables("WHARF_APPS")

	var cfg Config
	if err := cfgBuilder.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// validate normalizes the case-insensitive enum values in place.
func (c *Config) validate() error {
	mode, err := environment.ParseServerMetricsMode(string(c.Containers.ServerMetrics))
	if err != nil {
		return fmt.Errorf("containers.serverMetrics: %w", err)
	}
	c.Containers.ServerMetrics = mode

	format, err := datatable.ParseFormat(string(c.Containers.Output))
	if err != nil {
		return fmt.Errorf("containers.output: %w", err)
	}
	c.Containers.Output = format

	if c.Containers.PageSize < 0 {
		return fmt.Errorf("containers.pageSize: must not be negative, got %d", c.Containers.PageSize)
	}
	return nil
}
