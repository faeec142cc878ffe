package appcontainers

import (
	"context"
	"sync"

	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/environment"
	"gopkg.in/guregu/null.v4"
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/watch"
)

type stubFetcher struct {
	mu        sync.Mutex
	app       application.Application
	appErr    error
	pods      []v1.Pod
	podsErr   error
	watcher   watch.Interface
	listCalls int
	getCalls  int
}

func (f *stubFetcher) GetApplication(ctx context.Context, namespace, name string, resourceType application.ResourceType) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.appErr != nil {
		return application.Application{}, f.appErr
	}
	app := f.app
	app.Namespace, app.Name, app.ResourceType = namespace, name, resourceType
	return app, nil
}

func (f *stubFetcher) ListApplicationPods(ctx context.Context, app application.Application) ([]v1.Pod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.pods, f.podsErr
}

func (f *stubFetcher) setAppErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appErr = err
}

func (f *stubFetcher) WatchApplicationPods(ctx context.Context, app application.Application) (watch.Interface, error) {
	return f.watcher, nil
}

type stubProber struct {
	settings environment.Settings
	err      error
}

func (p stubProber) Probe(ctx context.Context) (environment.Settings, error) {
	return p.settings, p.err
}

func metricsProber(enabled bool) stubProber {
	return stubProber{settings: environment.Settings{UseServerMetrics: null.BoolFrom(enabled)}}
}
