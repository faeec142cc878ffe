package application

import (
	"context"
	"fmt"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"
)

type k8sFetcher struct {
	clientset kubernetes.Interface
}

// NewK8sFetcher returns a new Fetcher implementation that looks up
// applications in Kubernetes using the given clientset.
func NewK8sFetcher(clientset kubernetes.Interface) Fetcher {
	return k8sFetcher{clientset: clientset}
}

func (f k8sFetcher) GetApplication(ctx context.Context, namespace, name string, resourceType ResourceType) (Application, error) {
	app := Application{
		Namespace:    namespace,
		Name:         name,
		ResourceType: resourceType,
	}
	var (
		meta     metav1.ObjectMeta
		selector *metav1.LabelSelector
	)
	switch resourceType {
	case ResourceTypeDeployment:
		dep, err := f.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return Application{}, fmt.Errorf("get deployment %s/%s: %w", namespace, name, err)
		}
		meta, selector = dep.ObjectMeta, dep.Spec.Selector
	case ResourceTypeStatefulSet:
		sts, err := f.clientset.AppsV1().StatefulSets(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return Application{}, fmt.Errorf("get statefulset %s/%s: %w", namespace, name, err)
		}
		meta, selector = sts.ObjectMeta, sts.Spec.Selector
	case ResourceTypeDaemonSet:
		ds, err := f.clientset.AppsV1().DaemonSets(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return Application{}, fmt.Errorf("get daemonset %s/%s: %w", namespace, name, err)
		}
		meta, selector = ds.ObjectMeta, ds.Spec.Selector
	case ResourceTypePod:
		pod, err := f.clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return Application{}, fmt.Errorf("get pod %s/%s: %w", namespace, name, err)
		}
		app.UID = pod.UID
		return app, nil
	default:
		return Application{}, fmt.Errorf("unsupported resource type: %s", resourceType)
	}

	app.UID = meta.UID
	sel, err := parseWorkloadSelector(selector)
	if err != nil {
		return Application{}, fmt.Errorf("%s %s/%s: %w", resourceType, namespace, name, err)
	}
	app.Selector = sel
	log.Debug().
		WithString("namespace", namespace).
		WithString("name", name).
		WithStringer("resourceType", resourceType).
		WithStringer("selector", sel).
		Message("Resolved application.")
	return app, nil
}

func parseWorkloadSelector(selector *metav1.LabelSelector) (labels.Selector, error) {
	if selector == nil {
		return nil, fmt.Errorf("missing pod selector")
	}
	sel, err := metav1.LabelSelectorAsSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("parse pod selector: %w", err)
	}
	if sel.Empty() {
		return nil, fmt.Errorf("empty pod selector would match all pods")
	}
	return sel, nil
}

func (f k8sFetcher) ListApplicationPods(ctx context.Context, app Application) ([]v1.Pod, error) {
	if app.ResourceType == ResourceTypePod {
		pod, err := f.clientset.CoreV1().Pods(app.Namespace).Get(ctx, app.Name, metav1.GetOptions{})
		if err != nil {
			return nil, fmt.Errorf("get pod %s/%s: %w", app.Namespace, app.Name, err)
		}
		return []v1.Pod{*pod}, nil
	}
	opts, err := podListOptions(app)
	if err != nil {
		return nil, err
	}
	podList, err := f.clientset.CoreV1().Pods(app.Namespace).List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list pods of %s %s/%s: %w", app.ResourceType, app.Namespace, app.Name, err)
	}
	log.Debug().
		WithString("namespace", app.Namespace).
		WithString("name", app.Name).
		WithInt("count", len(podList.Items)).
		Message("Fetched application pods.")
	return podList.Items, nil
}

func (f k8sFetcher) WatchApplicationPods(ctx context.Context, app Application) (watch.Interface, error) {
	opts, err := podListOptions(app)
	if err != nil {
		return nil, err
	}
	w, err := f.clientset.CoreV1().Pods(app.Namespace).Watch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("watch pods of %s %s/%s: %w", app.ResourceType, app.Namespace, app.Name, err)
	}
	return w, nil
}

func podListOptions(app Application) (metav1.ListOptions, error) {
	if app.ResourceType == ResourceTypePod {
		return metav1.ListOptions{
			FieldSelector: fields.OneTermEqualSelector("metadata.name", app.Name).String(),
		}, nil
	}
	if app.Selector == nil {
		return metav1.ListOptions{}, fmt.Errorf("%s %s/%s has no pod selector", app.ResourceType, app.Namespace, app.Name)
	}
	return metav1.ListOptions{LabelSelector: app.Selector.String()}, nil
}
