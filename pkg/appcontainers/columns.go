package appcontainers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/iver-wharf/wharf-apps/pkg/containerrow"
	"github.com/iver-wharf/wharf-apps/pkg/datatable"
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

const creationDateLayout = "2006-01-02 15:04:05"

var statusColors = map[containerrow.Status]*color.Color{
	containerrow.StatusRunning:    color.New(color.FgGreen),
	containerrow.StatusWaiting:    color.New(color.FgYellow),
	containerrow.StatusTerminated: color.New(color.FgRed),
}

// Columns returns the columns of the containers table. Resource columns are
// only included when the cluster serves resource metrics.
func Columns(serverMetricsEnabled bool) []datatable.Column[containerrow.Row] {
	columns := []datatable.Column[containerrow.Row]{
		{
			ID:     "name",
			Header: "Name",
			Value:  func(r containerrow.Row) string { return r.Name },
		},
		{
			ID:     "image",
			Header: "Image",
			Value:  func(r containerrow.Row) string { return r.Image },
		},
		{
			ID:     "imagePullPolicy",
			Header: "Image pull policy",
			Value:  func(r containerrow.Row) string { return string(r.ImagePullPolicy) },
		},
		{
			ID:     "status",
			Header: "Status",
			Value:  func(r containerrow.Row) string { return r.Status.String() },
			Style:  func(r containerrow.Row) *color.Color { return statusColors[r.Status] },
		},
		{
			ID:     "nodeName",
			Header: "Node",
			Value:  func(r containerrow.Row) string { return r.NodeName },
		},
		{
			ID:     "podName",
			Header: "Pod",
			Value:  func(r containerrow.Row) string { return r.PodName },
		},
		{
			ID:     "podIp",
			Header: "Pod IP",
			Value:  func(r containerrow.Row) string { return r.PodIP },
		},
		{
			ID:     "creationDate",
			Header: "Creation date",
			Value:  func(r containerrow.Row) string { return formatCreationDate(r.CreationDate) },
		},
	}
	if !serverMetricsEnabled {
		return columns
	}
	return append(columns,
		datatable.Column[containerrow.Row]{
			ID:          "cpu",
			Header:      "CPU req/limit",
			Value:       func(r containerrow.Row) string { return formatResource(r.Resources, v1.ResourceCPU) },
			DisableSort: true,
		},
		datatable.Column[containerrow.Row]{
			ID:          "memory",
			Header:      "Memory req/limit",
			Value:       func(r containerrow.Row) string { return formatResource(r.Resources, v1.ResourceMemory) },
			DisableSort: true,
		},
	)
}

func formatCreationDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format(creationDateLayout)
}

func formatResource(res v1.ResourceRequirements, name v1.ResourceName) string {
	req, hasReq := res.Requests[name]
	limit, hasLimit := res.Limits[name]
	if !hasReq && !hasLimit {
		return ""
	}
	return fmt.Sprintf("%s / %s", formatQuantity(req, hasReq), formatQuantity(limit, hasLimit))
}

func formatQuantity(q resource.Quantity, ok bool) string {
	if !ok {
		return "-"
	}
	return q.String()
}
