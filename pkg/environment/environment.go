// Package environment resolves settings about the Kubernetes environment that
// affect how applications are presented, such as whether the cluster serves
// resource metrics.
package environment

import (
	"context"
	"fmt"
	"strings"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"gopkg.in/guregu/null.v4"
	"k8s.io/client-go/discovery"
)

var log = logger.NewScoped("ENVIRONMENT")

// MetricsAPIGroup is the API group served by the Kubernetes metrics-server.
const MetricsAPIGroup = "metrics.k8s.io"

// ServerMetricsMode decides how server metrics availability is resolved.
type ServerMetricsMode string

const (
	// ServerMetricsAuto checks if the cluster serves the metrics API group.
	ServerMetricsAuto ServerMetricsMode = "auto"
	// ServerMetricsEnabled assumes the cluster serves metrics.
	ServerMetricsEnabled ServerMetricsMode = "enabled"
	// ServerMetricsDisabled assumes the cluster does not serve metrics.
	ServerMetricsDisabled ServerMetricsMode = "disabled"
)

// ParseServerMetricsMode parses a mode, ignoring casing.
func ParseServerMetricsMode(s string) (ServerMetricsMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ServerMetricsAuto, nil
	case "enabled", "true", "on":
		return ServerMetricsEnabled, nil
	case "disabled", "false", "off":
		return ServerMetricsDisabled, nil
	default:
		return "", fmt.Errorf("invalid server metrics mode: %q, must be one of: auto, enabled, disabled", s)
	}
}

// String implements the fmt.Stringer and pflag.Value interfaces.
func (m *ServerMetricsMode) String() string {
	return string(*m)
}

// Set implements the pflag.Value interface.
func (m *ServerMetricsMode) Set(s string) error {
	parsed, err := ParseServerMetricsMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements the pflag.Value interface.
func (m *ServerMetricsMode) Type() string {
	return "mode"
}

// Settings holds the resolved environment settings. Unknown values are
// represented as invalid null values.
type Settings struct {
	UseServerMetrics null.Bool `json:"useServerMetrics"`
}

// ServerMetricsEnabled returns true only if server metrics are known to be
// available.
func (s Settings) ServerMetricsEnabled() bool {
	return s.UseServerMetrics.ValueOrZero()
}

// Prober is an interface declaring what methods are required to resolve
// environment settings.
type Prober interface {
	Probe(ctx context.Context) (Settings, error)
}

type prober struct {
	mode      ServerMetricsMode
	discovery discovery.DiscoveryInterface
}

// NewProber returns a Prober that resolves settings based on the given mode.
// The discovery client is only used in ServerMetricsAuto mode, and may be nil
// otherwise.
func NewProber(mode ServerMetricsMode, disco discovery.DiscoveryInterface) Prober {
	return prober{mode: mode, discovery: disco}
}

func (p prober) Probe(ctx context.Context) (Settings, error) {
	switch p.mode {
	case ServerMetricsEnabled:
		return Settings{UseServerMetrics: null.BoolFrom(true)}, nil
	case ServerMetricsDisabled:
		return Settings{UseServerMetrics: null.BoolFrom(false)}, nil
	}
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	if p.discovery == nil {
		return Settings{}, nil
	}
	served, err := servesAPIGroup(p.discovery, MetricsAPIGroup)
	if err != nil {
		log.Warn().WithError(err).
			WithString("group", MetricsAPIGroup).
			Message("Failed to discover API groups. Treating server metrics as unavailable.")
		return Settings{}, nil
	}
	log.Debug().WithString("group", MetricsAPIGroup).
		WithBool("served", served).
		Message("Discovered server metrics availability.")
	return Settings{UseServerMetrics: null.BoolFrom(served)}, nil
}

func servesAPIGroup(disco discovery.DiscoveryInterface, group string) (bool, error) {
	groups, err := disco.ServerGroups()
	if err != nil {
		return false, err
	}
	for _, g := range groups.Groups {
		if g.Name == group {
			return true, nil
		}
	}
	return false, nil
}
