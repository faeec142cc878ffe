// Package application looks up Kubernetes applications, meaning workload
// resources such as Deployments, and the pods they own.
package application

import (
	"context"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/watch"
)

var log = logger.NewScoped("APPLICATION")

// Application is a resolved Kubernetes application.
type Application struct {
	Namespace    string
	Name         string
	ResourceType ResourceType
	UID          types.UID

	// Selector matches the pods of a workload resource. It is nil when
	// ResourceType is ResourceTypePod.
	Selector labels.Selector
}

// Fetcher is an interface declaring what methods are required to look up
// applications and their pods.
type Fetcher interface {
	GetApplication(ctx context.Context, namespace, name string, resourceType ResourceType) (Application, error)
	ListApplicationPods(ctx context.Context, app Application) ([]v1.Pod, error)
	WatchApplicationPods(ctx context.Context, app Application) (watch.Interface, error)
}
