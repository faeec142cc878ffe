// Package appcontainers presents the containers of a Kubernetes application's
// pods as a datatable.
package appcontainers

import (
	"context"

	"github.com/iver-wharf/wharf-apps/internal/parallel"
	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/containerrow"
	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	"github.com/iver-wharf/wharf-apps/pkg/environment"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	v1 "k8s.io/api/core/v1"
)

var log = logger.NewScoped("APP-CONTAINERS")

const (
	// StorageKey is the key the table settings are persisted under.
	StorageKey = "k8sContainersDatatable"
	// Title is the title of the containers table.
	Title = "Application containers"
	// EmptyContentLabel is shown when the application has no containers.
	EmptyContentLabel = "No containers found"
)

// Params identifies the application to show containers of.
type Params struct {
	Namespace    string
	Name         string
	ResourceType application.ResourceType
}

// Query is the result of fetching everything the containers table needs.
type Query struct {
	Application          application.Application
	Pods                 []v1.Pod
	IsLoading            bool
	ServerMetricsEnabled bool
}

// Loader fetches applications, their pods, and the environment settings.
type Loader struct {
	Fetcher application.Fetcher
	Prober  environment.Prober
}

// Load fetches the application and its pods while concurrently probing the
// environment. The first failure cancels the other.
func (l Loader) Load(ctx context.Context, params Params) (Query, error) {
	var (
		q        Query
		settings environment.Settings
		g        parallel.Group
	)
	g.AddFunc("application", func(ctx context.Context) error {
		app, err := l.Fetcher.GetApplication(ctx, params.Namespace, params.Name, params.ResourceType)
		if err != nil {
			return err
		}
		pods, err := l.Fetcher.ListApplicationPods(ctx, app)
		if err != nil {
			return err
		}
		q.Application = app
		q.Pods = pods
		return nil
	})
	g.AddFunc("environment", func(ctx context.Context) error {
		var err error
		settings, err = l.Prober.Probe(ctx)
		return err
	})
	if err := g.RunCancelEarly(ctx); err != nil {
		return Query{}, err
	}
	q.ServerMetricsEnabled = settings.ServerMetricsEnabled()
	log.Debug().
		WithString("namespace", params.Namespace).
		WithString("name", params.Name).
		WithInt("pods", len(q.Pods)).
		WithBool("serverMetrics", q.ServerMetricsEnabled).
		Message("Loaded application containers.")
	return q, nil
}

// View builds containers tables, caching the rows between builds as long as
// the same pod slice is given.
type View struct {
	projector containerrow.Projector
}

// Table returns the containers datatable for a query.
func (v *View) Table(q Query, state datatable.State) datatable.Table[containerrow.Row] {
	return datatable.Table[containerrow.Row]{
		Title:             Title,
		Columns:           Columns(q.ServerMetricsEnabled),
		Rows:              v.projector.Project(q.Pods),
		RowID:             containerrow.Row.ID,
		IsLoading:         q.IsLoading,
		EmptyContentLabel: EmptyContentLabel,
		DisableSelect:     true,
		State:             state,
	}
}
