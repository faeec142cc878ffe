// Package containerrow flattens the containers of Kubernetes pods into table
// rows, tagging each container with its owning pod's details and a display
// status.
package containerrow

import (
	"time"

	"github.com/samber/lo"
	v1 "k8s.io/api/core/v1"
)

// Row is a single container of a pod, together with the fields of its pod
// that are shown alongside it.
type Row struct {
	v1.Container

	PodName      string `json:"podName"`
	NodeName     string `json:"nodeName"`
	PodIP        string `json:"podIp"`
	CreationDate string `json:"creationDate"`
	Status       Status `json:"status"`
}

// ID returns the row identity, which is the container name. Containers of
// different pods that share the same name get the same ID.
func (r Row) ID() string {
	return r.Name
}

// Project returns one row per container of the given pods, in pod order. The
// rows of a pod are its regular containers followed by its init containers.
//
// The returned slice is never nil.
func Project(pods []v1.Pod) []Row {
	rows := lo.FlatMap(pods, func(pod v1.Pod, _ int) []Row {
		return projectPod(pod)
	})
	if rows == nil {
		return []Row{}
	}
	return rows
}

func projectPod(pod v1.Pod) []Row {
	containers := make([]v1.Container, 0, len(pod.Spec.Containers)+len(pod.Spec.InitContainers))
	containers = append(containers, pod.Spec.Containers...)
	containers = append(containers, pod.Spec.InitContainers...)

	creationDate := ""
	if pod.Status.StartTime != nil {
		creationDate = pod.Status.StartTime.UTC().Format(time.RFC3339)
	}

	return lo.Map(containers, func(c v1.Container, _ int) Row {
		return Row{
			Container:    c,
			PodName:      pod.Name,
			NodeName:     pod.Spec.NodeName,
			PodIP:        pod.Status.PodIP,
			CreationDate: creationDate,
			Status:       Classify(c.Name, pod.Status.ContainerStatuses),
		}
	})
}
