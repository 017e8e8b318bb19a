package kserve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic/fake"

	"maternal-care-service/internal/config"
)

func inferenceService(namespace, name string, status map[string]interface{}) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "serving.kserve.io/v1beta1",
		"kind":       "InferenceService",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": namespace,
		},
	}}
	if status != nil {
		obj.Object["status"] = status
	}
	return obj
}

func newFakeClient(defaultNS string, objs ...runtime.Object) *kserveClient {
	dyn := fake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{inferenceServiceGVR: "InferenceServiceList"},
		objs...,
	)
	return newKServeClient(dyn, defaultNS)
}

func TestKServeClient_GetStatus(t *testing.T) {
	isvc := inferenceService("model-serving", "tf-risk", map[string]interface{}{
		"url": "http://tf-risk.model-serving.example.com",
		"conditions": []interface{}{
			map[string]interface{}{"type": "PredictorReady", "status": "True"},
			map[string]interface{}{"type": "Ready", "status": "True"},
		},
	})

	client := newFakeClient("", isvc)
	require.True(t, client.IsAvailable())

	status, err := client.GetStatus(context.Background(), "", "tf-risk")
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.Equal(t, "http://tf-risk.model-serving.example.com", status.URL)
	assert.Empty(t, status.Error)
}

func TestKServeClient_GetStatus_NotFound(t *testing.T) {
	client := newFakeClient("serving")

	_, err := client.GetStatus(context.Background(), "", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get kserve inferenceservice")
}

func TestKServeClient_Disabled(t *testing.T) {
	client, err := NewKServeClient(&config.KubernetesConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, client.IsAvailable())

	_, err = client.GetStatus(context.Background(), "model-serving", "tf-risk")
	assert.EqualError(t, err, "kserve integration disabled")
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   map[string]interface{}
		ready    bool
		url      string
		errorMsg string
	}{
		{
			name: "no status yet",
		},
		{
			name:   "url without conditions",
			status: map[string]interface{}{"url": "http://a"},
			url:    "http://a",
		},
		{
			name: "not ready with message",
			status: map[string]interface{}{
				"conditions": []interface{}{
					map[string]interface{}{"type": "Ready", "status": "False", "message": "Revision failed"},
				},
			},
			errorMsg: "Revision failed",
		},
		{
			name: "unknown readiness",
			status: map[string]interface{}{
				"conditions": []interface{}{
					map[string]interface{}{"type": "Ready", "status": "Unknown", "message": "pending"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := parseStatus(inferenceService("ns", "m", tt.status))
			assert.Equal(t, tt.ready, status.Ready)
			assert.Equal(t, tt.url, status.URL)
			assert.Equal(t, tt.errorMsg, status.Error)
		})
	}
}
