package containerrow

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
	v1 "k8s.io/api/core/v1"
)

// Status is an enum of the display statuses of a container.
type Status byte

const (
	// StatusTerminated means the container has no reported status, or that its
	// reported state is neither waiting nor running.
	StatusTerminated Status = iota
	// StatusWaiting means the container is reported as waiting, such as when
	// pulling its image or backing off after a crash.
	StatusWaiting
	// StatusRunning means the container is reported as running.
	StatusRunning
)

// String implements the fmt.Stringer interface.
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "Waiting"
	case StatusRunning:
		return "Running"
	default:
		return "Terminated"
	}
}

// ParseStatus parses a string as a status, or returns StatusTerminated if it
// cannot find a matching status value. This is the inverse of the
// Status.String() method.
func ParseStatus(s string) Status {
	switch strings.ToLower(s) {
	case "waiting":
		return StatusWaiting
	case "running":
		return StatusRunning
	default:
		return StatusTerminated
	}
}

// MarshalJSON implements json.Marshaler
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	*s = ParseStatus(str)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Status) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	*s = ParseStatus(str)
	return nil
}

// Classify returns the display status of a container by looking up its
// runtime status by name. Only the first status with a matching name is
// considered.
func Classify(containerName string, statuses []v1.ContainerStatus) Status {
	status, ok := lo.Find(statuses, func(s v1.ContainerStatus) bool {
		return s.Name == containerName
	})
	if !ok {
		return StatusTerminated
	}
	if status.State.Waiting != nil {
		return StatusWaiting
	}
	if status.State.Running == nil {
		return StatusTerminated
	}
	return StatusRunning
}
