package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResourceType(t *testing.T) {
	testCases := []struct {
		input   string
		want    ResourceType
		wantErr bool
	}{
		{input: "Deployment", want: ResourceTypeDeployment},
		{input: "deployments", want: ResourceTypeDeployment},
		{input: "deploy", want: ResourceTypeDeployment},
		{input: "StatefulSet", want: ResourceTypeStatefulSet},
		{input: "sts", want: ResourceTypeStatefulSet},
		{input: "daemonSets", want: ResourceTypeDaemonSet},
		{input: "DS", want: ResourceTypeDaemonSet},
		{input: "pod", want: ResourceTypePod},
		{input: "po", want: ResourceTypePod},
		{input: "cronjob", want: ResourceTypeUnknown, wantErr: true},
		{input: "", want: ResourceTypeUnknown, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseResourceType(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResourceType_StringRoundTrip(t *testing.T) {
	for _, rt := range ResourceTypes {
		got, err := ParseResourceType(rt.String())
		assert.NoError(t, err)
		assert.Equal(t, rt, got)
	}
}

func TestResourceType_Set(t *testing.T) {
	var rt ResourceType
	assert.NoError(t, rt.Set("sts"))
	assert.Equal(t, ResourceTypeStatefulSet, rt)
	assert.Error(t, rt.Set("foo"))
	assert.Equal(t, ResourceTypeStatefulSet, rt)
}
