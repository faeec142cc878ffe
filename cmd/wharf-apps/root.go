package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iver-wharf/wharf-apps/internal/flagtypes"
	"github.com/iver-wharf/wharf-apps/pkg/config"
	"github.com/iver-wharf/wharf-core/v2/pkg/app"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger/consolepretty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

var log = logger.NewScoped("WHARF-APPS")

var (
	isLoggingInitialized bool
	rootConfig           config.Config
	rootContext          = context.Background()
)

var rootFlags = struct {
	loglevel     flagtypes.LogLevel
	k8sOverrides clientcmd.ConfigOverrides
}{
	loglevel: flagtypes.LogLevel(logger.LevelInfo),
}

var rootCmd = &cobra.Command{
	SilenceErrors: true,
	SilenceUsage:  true,
	Use:           "wharf-apps",
	Short:         "Browse the containers of applications running in Kubernetes",
	Long: `Browse the containers of applications running in Kubernetes.

An application is a Deployment, StatefulSet, DaemonSet, or a bare Pod. The
containers of all the application's pods, including init containers, are
shown as one table.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		rootConfig = cfg

		ctx, cancel := context.WithCancel(context.Background())
		rootContext = ctx
		go handleCancelSignals(cancel)
		return nil
	},
}

func addKubernetesFlags(flagSet *pflag.FlagSet, overrides *clientcmd.ConfigOverrides) {
	overrideFlags := clientcmd.RecommendedConfigOverrideFlags("k8s-")
	clientcmd.BindOverrideFlags(overrides, flagSet, overrideFlags)
}

func loadKubeconfig(overrides clientcmd.ConfigOverrides) (*rest.Config, string, error) {
	if overrides.CurrentContext == "" {
		overrides.CurrentContext = rootConfig.K8s.Context
	}
	if overrides.Context.Namespace == "" {
		overrides.Context.Namespace = rootConfig.K8s.Namespace
	}
	loader := clientcmd.NewDefaultClientConfigLoadingRules()
	clientConf := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loader, &overrides)
	restConf, err := clientConf.ClientConfig()
	if err != nil {
		return nil, "", fmt.Errorf("load kubeconfig: %w", err)
	}
	ns, _, err := clientConf.Namespace()
	if err != nil {
		return nil, "", fmt.Errorf("get namespace to use: %w", err)
	}
	log.Debug().
		WithString("namespace", ns).
		WithString("host", restConf.Host).
		Message("Loaded kube-config")
	return restConf, ns, nil
}

func execute(version app.Version) {
	rootCmd.Version = versionString(version)
	if err := rootCmd.Execute(); err != nil {
		initLoggingIfNeeded()
		log.Error().Message(err.Error())
		os.Exit(1)
	}
}

func versionString(v app.Version) string {
	var sb strings.Builder
	if v.Version != "" {
		sb.WriteString(v.Version)
	} else {
		sb.WriteString("v0.0.0")
	}
	if v.BuildRef != 0 {
		fmt.Fprintf(&sb, " #%d", v.BuildRef)
	}
	if v.BuildGitCommit != "" && v.BuildGitCommit != "HEAD" {
		fmt.Fprintf(&sb, " (%s)", v.BuildGitCommit)
	}
	if v.BuildDate != (time.Time{}) {
		sb.WriteString(" built ")
		sb.WriteString(v.BuildDate.Format(time.RFC1123))
	}
	return sb.String()
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.InitDefaultVersionFlag()
	rootCmd.PersistentFlags().Var(&rootFlags.loglevel, "loglevel", "Show debug information")
	rootCmd.RegisterFlagCompletionFunc("loglevel", flagtypes.CompleteLogLevel)
	addKubernetesFlags(rootCmd.PersistentFlags(), &rootFlags.k8sOverrides)
}

func initLoggingIfNeeded() {
	if !isLoggingInitialized {
		initLogging()
	}
}

func initLogging() {
	level := rootFlags.loglevel.Level()
	logConfig := consolepretty.DefaultConfig
	if level != logger.LevelDebug {
		logConfig.DisableCaller = true
		logConfig.DisableDate = true
		logConfig.ScopeMinLengthAuto = false
	}
	logger.AddOutput(level, consolepretty.New(logConfig))
	log.Debug().WithStringer("loglevel", level).Message("Setting log-level.")
	isLoggingInitialized = true
}

func handleCancelSignals(cancel func()) {
	waitForCancelSignal()
	log.Info().Message("Cancelling. Press ^C again to force quit.")
	go func() {
		waitForCancelSignal()
		log.Warn().Message("Received second interrupt. Force quitting now.")
		os.Exit(2)
	}()
	cancel()
}

func waitForCancelSignal() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	<-ch
}
