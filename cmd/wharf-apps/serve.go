package main

import (
	"github.com/iver-wharf/wharf-apps/pkg/appcontainersapi"
	"github.com/spf13/cobra"
)

var serveFlags = struct {
	bindAddress string
}{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts serving HTTP REST API",
	Long: `Starts serving a HTTP REST API with the same containers tables as
the "wharf-apps containers" command, as well as WebSocket endpoints that
push the table each time the application's pods change.

You can see an offline Swagger documentation of the API by visiting
the following URL path on a running wharf-apps server:

	/api/swagger/index.html
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		restConf, _, err := loadKubeconfig(rootFlags.k8sOverrides)
		if err != nil {
			return err
		}
		loader, err := newLoader(restConf, rootConfig.Containers.ServerMetrics)
		if err != nil {
			return err
		}
		httpConfig := rootConfig.HTTP
		if cmd.Flags().Changed("bind-address") {
			httpConfig.BindAddress = serveFlags.bindAddress
		}
		return appcontainersapi.Serve(loader, httpConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.bindAddress, "bind-address", "", "IP-address and port to serve on (default from config, or \"0.0.0.0:5010\")")
}
