package appcontainersapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainers"
	"github.com/iver-wharf/wharf-apps/pkg/config"
	"github.com/iver-wharf/wharf-apps/pkg/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/watch"
)

type stubFetcher struct {
	pods    []v1.Pod
	watcher *watch.FakeWatcher
}

func (f stubFetcher) GetApplication(ctx context.Context, namespace, name string, resourceType application.ResourceType) (application.Application, error) {
	return application.Application{Namespace: namespace, Name: name, ResourceType: resourceType}, nil
}

func (f stubFetcher) ListApplicationPods(ctx context.Context, app application.Application) ([]v1.Pod, error) {
	return f.pods, nil
}

func (f stubFetcher) WatchApplicationPods(ctx context.Context, app application.Application) (watch.Interface, error) {
	return f.watcher, nil
}

func TestWatchContainers(t *testing.T) {
	fw := watch.NewFake()
	loader := appcontainers.Loader{
		Fetcher: stubFetcher{
			pods:    []v1.Pod{*newPod("web-1", nil)},
			watcher: fw,
		},
		Prober: environment.NewProber(environment.ServerMetricsDisabled, nil),
	}
	srv := httptest.NewServer(NewRouter(loader, config.HTTPConfig{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/api/namespaces/test-ns/applications/deployment/web/containers/watch?sortBy=podName"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	table := readTable(t, conn)
	assert.False(t, table.ServerMetricsEnabled)
	assert.Len(t, table.Columns, 8)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "web-1", table.Rows[0].Row.PodName)

	fw.Add(newPod("web-2", nil))
	table = readTable(t, conn)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, "web-2", table.Rows[3].Row.PodName)

	require.NoError(t, conn.WriteJSON(map[string]any{"search": "web-2"}))
	table = readTable(t, conn)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "web-2", table.Rows[0].Row.PodName)

	fw.Delete(newPod("web-2", nil))
	table = readTable(t, conn)
	assert.Empty(t, table.Rows)
	assert.Equal(t, appcontainers.EmptyContentLabel, table.EmptyContentLabel)
}

func TestWatchContainersBadResourceType(t *testing.T) {
	loader := appcontainers.Loader{
		Fetcher: stubFetcher{watcher: watch.NewFake()},
		Prober:  environment.NewProber(environment.ServerMetricsDisabled, nil),
	}
	srv := httptest.NewServer(NewRouter(loader, config.HTTPConfig{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/api/namespaces/test-ns/applications/job/web/containers/watch"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWatchContainersRejectsCrossOrigin(t *testing.T) {
	testCases := []struct {
		name   string
		cors   config.CORSConfig
		origin string
		wantOK bool
	}{
		{
			name:   "default config rejects other origin",
			origin: "http://evil.example",
		},
		{
			name:   "allow list rejects unlisted origin",
			cors:   config.CORSConfig{AllowOrigins: []string{"http://wharf.example"}},
			origin: "http://evil.example",
		},
		{
			name:   "allow list accepts listed origin",
			cors:   config.CORSConfig{AllowOrigins: []string{"http://wharf.example"}},
			origin: "http://wharf.example",
			wantOK: true,
		},
		{
			name:   "allow all accepts any origin",
			cors:   config.CORSConfig{AllowAllOrigins: true},
			origin: "http://evil.example",
			wantOK: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader := appcontainers.Loader{
				Fetcher: stubFetcher{
					pods:    []v1.Pod{*newPod("web-1", nil)},
					watcher: watch.NewFake(),
				},
				Prober: environment.NewProber(environment.ServerMetricsDisabled, nil),
			}
			srv := httptest.NewServer(NewRouter(loader, config.HTTPConfig{CORS: tc.cors}))
			defer srv.Close()

			url := "ws" + strings.TrimPrefix(srv.URL, "http") +
				"/api/namespaces/test-ns/applications/deployment/web/containers/watch"
			conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {tc.origin}})
			if !tc.wantOK {
				require.Error(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				return
			}
			require.NoError(t, err)
			defer conn.Close()
			table := readTable(t, conn)
			assert.Len(t, table.Rows, 2)
		})
	}
}

func TestWatchContainersSendsLoadingOnRelist(t *testing.T) {
	fw := watch.NewFake()
	loader := appcontainers.Loader{
		Fetcher: stubFetcher{
			pods:    []v1.Pod{*newPod("web-1", nil)},
			watcher: fw,
		},
		Prober: environment.NewProber(environment.ServerMetricsDisabled, nil),
	}
	srv := httptest.NewServer(NewRouter(loader, config.HTTPConfig{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/api/namespaces/test-ns/applications/deployment/web/containers/watch"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	table := readTable(t, conn)
	assert.False(t, table.IsLoading)
	require.Len(t, table.Rows, 2)

	fw.Stop()
	table = readTable(t, conn)
	assert.True(t, table.IsLoading)

	table = readTable(t, conn)
	assert.False(t, table.IsLoading)
	assert.Len(t, table.Rows, 2)
}

func readTable(t *testing.T, conn *websocket.Conn) Table {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var table Table
	require.NoError(t, conn.ReadJSON(&table))
	return table
}
