package main

import (
	"fmt"

	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainers"
	"github.com/iver-wharf/wharf-apps/pkg/environment"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

func newLoader(restConf *rest.Config, mode environment.ServerMetricsMode) (appcontainers.Loader, error) {
	clientset, err := kubernetes.NewForConfig(restConf)
	if err != nil {
		return appcontainers.Loader{}, fmt.Errorf("create kubernetes client: %w", err)
	}
	return appcontainers.Loader{
		Fetcher: application.NewK8sFetcher(clientset),
		Prober:  environment.NewProber(mode, clientset.Discovery()),
	}, nil
}
