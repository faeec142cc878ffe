package appcontainers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iver-wharf/wharf-apps/pkg/application"
	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/watch"
)

const defaultResyncDelay = time.Second

// Watcher keeps a snapshot of an application's pods up to date by watching
// Kubernetes for pod events.
type Watcher struct {
	Fetcher     application.Fetcher
	Application application.Application
	// OnChange is called with a new snapshot each time the pods change. The
	// snapshot slice is never mutated afterwards.
	OnChange func(pods []v1.Pod)
	// OnReload is called when the watch has ended and the application is about
	// to be fetched again. The last snapshot is stale until the next OnChange.
	OnReload func()
	// ResyncDelay is how long to wait before listing the pods again after the
	// watch ended. Defaults to 1 second.
	ResyncDelay time.Duration
}

// Run lists and then watches the pods until the context is cancelled, listing
// them again whenever the watch ends. Before listing again the application
// itself is fetched, and Run returns its not found error if it was deleted.
func (w Watcher) Run(ctx context.Context) error {
	delay := w.ResyncDelay
	if delay <= 0 {
		delay = defaultResyncDelay
	}
	app := w.Application
	for {
		err := w.listAndWatch(ctx, app)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if apierrors.IsNotFound(err) {
				return err
			}
			log.Warn().WithError(err).
				WithString("name", app.Name).
				Message("Pod watch failed. Listing pods again.")
		} else {
			log.Debug().WithString("name", app.Name).
				Message("Pod watch ended. Listing pods again.")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		if w.OnReload != nil {
			w.OnReload()
		}
		refreshed, err := w.Fetcher.GetApplication(ctx, app.Namespace, app.Name, app.ResourceType)
		switch {
		case ctx.Err() != nil:
			return nil
		case apierrors.IsNotFound(err):
			return err
		case err != nil:
			log.Warn().WithError(err).
				WithString("name", app.Name).
				Message("Failed to fetch application. Using its previous selector.")
		default:
			app = refreshed
		}
	}
}

func (w Watcher) listAndWatch(ctx context.Context, app application.Application) error {
	pods, err := w.Fetcher.ListApplicationPods(ctx, app)
	if err != nil {
		return err
	}
	snapshot := newPodSnapshot(pods)
	w.notify(snapshot.pods)

	watcher, err := w.Fetcher.WatchApplicationPods(ctx, app)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.ResultChan():
			if !ok {
				return nil
			}
			changed, err := snapshot.apply(ev)
			if err != nil {
				return err
			}
			if changed {
				w.notify(snapshot.pods)
			}
		}
	}
}

func (w Watcher) notify(pods []v1.Pod) {
	if w.OnChange != nil {
		w.OnChange(pods)
	}
}

type podSnapshot struct {
	pods []v1.Pod
}

func newPodSnapshot(pods []v1.Pod) podSnapshot {
	sorted := make([]v1.Pod, len(pods))
	copy(sorted, pods)
	sortPods(sorted)
	return podSnapshot{pods: sorted}
}

// apply updates the snapshot from a watch event. The pods slice is replaced,
// never mutated, and only when the event actually changes a pod.
func (s *podSnapshot) apply(ev watch.Event) (bool, error) {
	switch ev.Type {
	case watch.Bookmark:
		return false, nil
	case watch.Error:
		return false, watchError(ev)
	}
	pod, ok := ev.Object.(*v1.Pod)
	if !ok {
		return false, fmt.Errorf("unexpected object in pod watch: %T", ev.Object)
	}
	idx := s.indexOf(pod.Name)
	switch ev.Type {
	case watch.Added, watch.Modified:
		if idx >= 0 && s.pods[idx].ResourceVersion == pod.ResourceVersion && pod.ResourceVersion != "" {
			return false, nil
		}
		next := make([]v1.Pod, 0, len(s.pods)+1)
		for i, p := range s.pods {
			if i != idx {
				next = append(next, p)
			}
		}
		next = append(next, *pod)
		sortPods(next)
		s.pods = next
		return true, nil
	case watch.Deleted:
		if idx < 0 {
			return false, nil
		}
		next := make([]v1.Pod, 0, len(s.pods)-1)
		next = append(next, s.pods[:idx]...)
		next = append(next, s.pods[idx+1:]...)
		s.pods = next
		return true, nil
	default:
		return false, nil
	}
}

func (s *podSnapshot) indexOf(name string) int {
	for i := range s.pods {
		if s.pods[i].Name == name {
			return i
		}
	}
	return -1
}

func sortPods(pods []v1.Pod) {
	sort.SliceStable(pods, func(i, j int) bool {
		return pods[i].Name < pods[j].Name
	})
}

func watchError(ev watch.Event) error {
	return fmt.Errorf("pod watch: %w", apierrors.FromObject(ev.Object))
}
