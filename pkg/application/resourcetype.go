package application

import (
	"fmt"
	"strings"
)

// ResourceType is the kind of Kubernetes resource an application is made of.
type ResourceType byte

const (
	// ResourceTypeUnknown is the zero value and is not a valid resource type.
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeDeployment is an application managed by an apps/v1
	// Deployment.
	ResourceTypeDeployment
	// ResourceTypeStatefulSet is an application managed by an apps/v1
	// StatefulSet.
	ResourceTypeStatefulSet
	// ResourceTypeDaemonSet is an application managed by an apps/v1
	// DaemonSet.
	ResourceTypeDaemonSet
	// ResourceTypePod is a bare v1 Pod, not managed by any workload resource.
	ResourceTypePod
)

// ResourceTypes lists all valid resource types.
var ResourceTypes = []ResourceType{
	ResourceTypeDeployment,
	ResourceTypeStatefulSet,
	ResourceTypeDaemonSet,
	ResourceTypePod,
}

// String implements the fmt.Stringer interface.
func (t ResourceType) String() string {
	switch t {
	case ResourceTypeDeployment:
		return "Deployment"
	case ResourceTypeStatefulSet:
		return "StatefulSet"
	case ResourceTypeDaemonSet:
		return "DaemonSet"
	case ResourceTypePod:
		return "Pod"
	default:
		return "Unknown"
	}
}

// ParseResourceType parses a resource type by its kind name, plural name, or
// kubectl short name. Matching is case-insensitive.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(s) {
	case "deployment", "deployments", "deploy":
		return ResourceTypeDeployment, nil
	case "statefulset", "statefulsets", "sts":
		return ResourceTypeStatefulSet, nil
	case "daemonset", "daemonsets", "ds":
		return ResourceTypeDaemonSet, nil
	case "pod", "pods", "po":
		return ResourceTypePod, nil
	default:
		return ResourceTypeUnknown, fmt.Errorf("invalid resource type: %q", s)
	}
}

// Set implements the pflag.Value interface.
func (t *ResourceType) Set(s string) error {
	parsed, err := ParseResourceType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements the pflag.Value interface.
func (t *ResourceType) Type() string {
	return "resource-type"
}
