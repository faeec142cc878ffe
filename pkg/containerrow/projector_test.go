package containerrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
)

func TestProjector_ReusesRowsForSameSlice(t *testing.T) {
	var p Projector
	pods := []v1.Pod{newTestPod("pod-a")}

	first := p.Project(pods)
	second := p.Project(pods)

	require.Len(t, first, 1)
	assert.Same(t, &first[0], &second[0])
}

func TestProjector_RecomputesForNewSlice(t *testing.T) {
	var p Projector
	pods := []v1.Pod{newTestPod("pod-a")}
	first := p.Project(pods)

	updated := []v1.Pod{newTestPod("pod-a"), newTestPod("pod-b")}
	second := p.Project(updated)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestProjector_RecomputesForResliced(t *testing.T) {
	var p Projector
	pods := []v1.Pod{newTestPod("pod-a"), newTestPod("pod-b")}
	assert.Len(t, p.Project(pods), 2)
	assert.Len(t, p.Project(pods[:1]), 1)
}

func TestProjector_NilAndEmpty(t *testing.T) {
	var p Projector
	assert.Equal(t, []Row{}, p.Project(nil))
	assert.Equal(t, []Row{}, p.Project([]v1.Pod{}))
}

func TestProjector_Reset(t *testing.T) {
	var p Projector
	pods := []v1.Pod{newTestPod("pod-a")}
	first := p.Project(pods)
	p.Reset()
	second := p.Project(pods)

	assert.Equal(t, first, second)
	assert.NotSame(t, &first[0], &second[0])
}
