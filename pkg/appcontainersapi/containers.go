package appcontainersapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iver-wharf/wharf-apps/pkg/application"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainers"
	"github.com/iver-wharf/wharf-apps/pkg/config"
	"github.com/iver-wharf/wharf-apps/pkg/containerrow"
	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	"github.com/iver-wharf/wharf-core/v2/pkg/ginutil"
	"github.com/iver-wharf/wharf-core/v2/pkg/problem"
	"github.com/samber/lo"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Table is the containers table of an application, as shown on one page.
type Table struct {
	Title                string                                `json:"title" example:"Application containers"`
	Columns              []Column                              `json:"columns"`
	Rows                 []datatable.Record[containerrow.Row] `json:"rows"`
	ServerMetricsEnabled bool                                  `json:"serverMetricsEnabled"`
	EmptyContentLabel    string                                `json:"emptyContentLabel" example:"No containers found"`
	IsLoading            bool                                  `json:"isLoading"`
	Page                 int                                   `json:"page" example:"1"`
	PageCount            int                                   `json:"pageCount" example:"1"`
}

// Column is the header of one column in a Table.
type Column struct {
	ID     string `json:"id" example:"podName"`
	Header string `json:"header" example:"Pod"`
}

func newTable(t datatable.Table[containerrow.Row], serverMetricsEnabled bool) Table {
	columns := make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = Column{ID: c.ID, Header: c.Header}
	}
	return Table{
		Title:                t.Title,
		Columns:              columns,
		Rows:                 t.Records(),
		ServerMetricsEnabled: serverMetricsEnabled,
		EmptyContentLabel:    t.EmptyContentLabel,
		IsLoading:            t.IsLoading,
		Page:                 t.Page(),
		PageCount:            t.PageCount(),
	}
}

type tableQuery struct {
	SortBy   string `form:"sortBy" json:"sortBy"`
	SortDesc bool   `form:"sortDesc" json:"sortDesc"`
	Search   string `form:"search" json:"search"`
	PageSize int    `form:"pageSize" json:"pageSize"`
	Page     int    `form:"page" json:"page"`
}

func (q tableQuery) state() datatable.State {
	return datatable.State{
		SortBy:   q.SortBy,
		SortDesc: q.SortDesc,
		Search:   q.Search,
		PageSize: q.PageSize,
		Page:     q.Page,
	}
}

type containersModule struct {
	loader   appcontainers.Loader
	upgrader websocket.Upgrader
}

func newContainersModule(loader appcontainers.Loader, cors config.CORSConfig) containersModule {
	return containersModule{
		loader:   loader,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin(cors)},
	}
}

// checkOrigin returns the WebSocket origin check matching the CORS settings.
// A nil func makes the upgrader only accept same-host origins.
func checkOrigin(cors config.CORSConfig) func(r *http.Request) bool {
	if cors.AllowAllOrigins {
		return func(*http.Request) bool { return true }
	}
	if len(cors.AllowOrigins) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return lo.SomeBy(cors.AllowOrigins, func(allowed string) bool {
			return strings.EqualFold(allowed, origin)
		})
	}
}

func (m containersModule) register(g *gin.RouterGroup) {
	containers := g.Group("/namespaces/:namespace/applications/:resourceType/:name/containers")
	containers.GET("", m.getContainersHandler)
	containers.GET("/watch", m.watchContainersHandler)
}

// getContainersHandler godoc
// @id getContainers
// @summary Get the containers table of an application
// @description Flat-maps all pods of the application into one row per
// @description container, including init containers.
// @tags containers
// @produce json
// @param namespace    path  string true  "Kubernetes namespace" example(default)
// @param resourceType path  string true  "Kind of application" Enums(deployment, statefulset, daemonset, pod)
// @param name         path  string true  "Name of the application" example(my-app)
// @param sortBy       query string false "ID of the column to sort by" example(podName)
// @param sortDesc     query bool   false "Sort in descending order"
// @param search       query string false "Case-insensitive text to filter rows by"
// @param pageSize     query int    false "Number of rows per page. 0 disables pagination." minimum(0)
// @param page         query int    false "1-based page number" minimum(0)
// @success 200 {object} Table
// @failure 400 {object} problem.Response "Bad request"
// @failure 404 {object} problem.Response "Application not found"
// @failure 502 {object} problem.Response "Failed talking to Kubernetes"
// @router /api/namespaces/{namespace}/applications/{resourceType}/{name}/containers [get]
func (m containersModule) getContainersHandler(c *gin.Context) {
	params, state, ok := bindContainersRequest(c)
	if !ok {
		return
	}
	q, err := m.loader.Load(c.Request.Context(), params)
	if err != nil {
		writeLoadError(c, err, params)
		return
	}
	var view appcontainers.View
	c.JSON(http.StatusOK, newTable(view.Table(q, state), q.ServerMetricsEnabled))
}

// watchContainersHandler godoc
// @id watchContainers
// @summary Stream the containers table of an application
// @description Upgrades to a WebSocket connection. A Table JSON message is
// @description sent each time the application's pods change. Clients may send
// @description table settings as JSON text messages, using the same field
// @description names as the query parameters, to get the table sent again.
// @description While the pods are listed again the table has isLoading set.
// @tags containers
// @param namespace    path  string true  "Kubernetes namespace" example(default)
// @param resourceType path  string true  "Kind of application" Enums(deployment, statefulset, daemonset, pod)
// @param name         path  string true  "Name of the application" example(my-app)
// @param sortBy       query string false "ID of the column to sort by" example(podName)
// @param sortDesc     query bool   false "Sort in descending order"
// @param search       query string false "Case-insensitive text to filter rows by"
// @param pageSize     query int    false "Number of rows per page. 0 disables pagination." minimum(0)
// @param page         query int    false "1-based page number" minimum(0)
// @success 101 {object} Table "Switching protocols"
// @failure 400 {object} problem.Response "Bad request"
// @failure 404 {object} problem.Response "Application not found"
// @failure 502 {object} problem.Response "Failed talking to Kubernetes"
// @router /api/namespaces/{namespace}/applications/{resourceType}/{name}/containers/watch [get]
func (m containersModule) watchContainersHandler(c *gin.Context) {
	params, state, ok := bindContainersRequest(c)
	if !ok {
		return
	}
	q, err := m.loader.Load(c.Request.Context(), params)
	if err != nil {
		writeLoadError(c, err, params)
		return
	}
	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().WithError(err).Message("Failed to upgrade to WebSocket.")
		return
	}
	stream := newTableStream(conn, m.loader.Fetcher, q, state)
	stream.run()
}

func bindContainersRequest(c *gin.Context) (appcontainers.Params, datatable.State, bool) {
	resourceType, err := application.ParseResourceType(c.Param("resourceType"))
	if err != nil {
		ginutil.WriteInvalidParamError(c, err, "resourceType",
			fmt.Sprintf("Unknown resource type %q. Must be one of: deployment, statefulset, daemonset, pod.",
				c.Param("resourceType")))
		return appcontainers.Params{}, datatable.State{}, false
	}
	var query tableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ginutil.WriteInvalidBindError(c, err, "One or more parameters failed to parse when reading query parameters.")
		return appcontainers.Params{}, datatable.State{}, false
	}
	state := query.state()
	if err := state.Validate(); err != nil {
		ginutil.WriteInvalidBindError(c, err, "One or more table settings are out of range.")
		return appcontainers.Params{}, datatable.State{}, false
	}
	params := appcontainers.Params{
		Namespace:    c.Param("namespace"),
		Name:         c.Param("name"),
		ResourceType: resourceType,
	}
	return params, state, true
}

func writeLoadError(c *gin.Context, err error, params appcontainers.Params) {
	if apierrors.IsNotFound(err) {
		ginutil.WriteProblemError(c, err, problem.Response{
			Type:   "/prob/api/application-not-found",
			Title:  "Application not found.",
			Status: http.StatusNotFound,
			Detail: fmt.Sprintf("Found no %s named %q in namespace %q.",
				params.ResourceType, params.Name, params.Namespace),
		})
		return
	}
	detail := "Failed to fetch the application from Kubernetes."
	var statusErr apierrors.APIStatus
	if errors.As(err, &statusErr) {
		detail = fmt.Sprintf("%s Kubernetes responded with: %s", detail, statusErr.Status().Message)
	}
	ginutil.WriteProblemError(c, err, problem.Response{
		Type:   "/prob/api/kubernetes-request-failed",
		Title:  "Failed talking to Kubernetes.",
		Status: http.StatusBadGateway,
		Detail: detail,
	})
}
