package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainers"
	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationArgs(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		wantType application.ResourceType
		wantName string
		wantOK   bool
	}{
		{
			name:     "name only uses fallback",
			args:     []string{"web"},
			wantType: application.ResourceTypeStatefulSet,
			wantName: "web",
			wantOK:   true,
		},
		{
			name:     "type and name",
			args:     []string{"deploy", "web"},
			wantType: application.ResourceTypeDeployment,
			wantName: "web",
			wantOK:   true,
		},
		{
			name:     "type slash name",
			args:     []string{"ds/agent"},
			wantType: application.ResourceTypeDaemonSet,
			wantName: "agent",
			wantOK:   true,
		},
		{
			name:   "bad type",
			args:   []string{"cronjob/backup"},
			wantOK: false,
		},
		{
			name:   "no args",
			args:   nil,
			wantOK: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotType, gotName, err := parseApplicationArgs(tc.args, application.ResourceTypeStatefulSet)
			if !tc.wantOK {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, gotType)
			assert.Equal(t, tc.wantName, gotName)
		})
	}
}

func TestResolveTableState(t *testing.T) {
	store := datatable.NewSettingsStore(filepath.Join(t.TempDir(), "datatables.yml"))
	rootConfig.Containers.PageSize = 25
	t.Cleanup(func() { rootConfig.Containers.PageSize = 0 })

	state, err := resolveTableState(parseContainersFlags(t), store)
	require.NoError(t, err)
	assert.Equal(t, datatable.State{PageSize: 25, Page: 1}, state)
	_, stored, err := store.Load(appcontainers.StorageKey)
	require.NoError(t, err)
	assert.False(t, stored, "unchanged flags should not be stored")

	state, err = resolveTableState(parseContainersFlags(t, "--sort=podName", "--desc", "--page=3"), store)
	require.NoError(t, err)
	assert.Equal(t, datatable.State{SortBy: "podName", SortDesc: true, PageSize: 25, Page: 3}, state)

	state, err = resolveTableState(parseContainersFlags(t, "--search=web"), store)
	require.NoError(t, err)
	assert.Equal(t, datatable.State{SortBy: "podName", SortDesc: true, Search: "web", PageSize: 25, Page: 1}, state)
}

func TestResolveTableStateInvalidColumn(t *testing.T) {
	store := datatable.NewSettingsStore(filepath.Join(t.TempDir(), "datatables.yml"))
	_, err := resolveTableState(parseContainersFlags(t, "--sort=color"), store)
	assert.Error(t, err)
}

func TestResolveTableStateNegativePageSize(t *testing.T) {
	store := datatable.NewSettingsStore(filepath.Join(t.TempDir(), "datatables.yml"))
	_, err := resolveTableState(parseContainersFlags(t, "--page-size=-5"), store)
	assert.Error(t, err)
}

func TestTableWatcherPrintsLoadingOnReload(t *testing.T) {
	var buf bytes.Buffer
	printer := tablePrinter{w: &buf, format: datatable.FormatTable}
	w := newTableWatcher(nil, appcontainers.Query{}, &printer)

	w.OnReload()
	assert.Contains(t, buf.String(), "Loading...")

	buf.Reset()
	w.OnChange(nil)
	assert.NotContains(t, buf.String(), "Loading...")
	assert.Contains(t, buf.String(), appcontainers.EmptyContentLabel)
}

func parseContainersFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("containers", pflag.ContinueOnError)
	flags.StringVar(&containersFlags.sortBy, "sort", "", "")
	flags.BoolVar(&containersFlags.sortDesc, "desc", false, "")
	flags.StringVar(&containersFlags.search, "search", "", "")
	flags.IntVar(&containersFlags.pageSize, "page-size", 0, "")
	flags.IntVar(&containersFlags.page, "page", 1, "")
	require.NoError(t, flags.Parse(args))
	return flags
}
