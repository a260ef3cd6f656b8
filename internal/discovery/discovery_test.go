package discovery

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"alertctl/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func service(name, namespace string, ports ...int32) corev1.Service {
	svc := corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace}}
	for _, p := range ports {
		svc.Spec.Ports = append(svc.Spec.Ports, corev1.ServicePort{Port: p})
	}
	return svc
}

// fakeWithServices returns a clientset whose service listing answers from
// bySelector, preserving slice order, and records every selector queried.
func fakeWithServices(bySelector map[string][]corev1.Service, queried *[]string) *fake.Clientset {
	clientset := fake.NewSimpleClientset()
	clientset.PrependReactor("list", "services", func(action k8stesting.Action) (bool, runtime.Object, error) {
		selector := action.(k8stesting.ListAction).GetListRestrictions().Labels.String()
		*queried = append(*queried, selector)
		return true, &corev1.ServiceList{Items: bySelector[selector]}, nil
	})
	return clientset
}

func TestServiceURL(t *testing.T) {
	got, ok := ServiceURL(service("svc", "ns", 9093, 80), "cluster.local")
	assert.True(t, ok)
	assert.Equal(t, "http://svc.ns.svc.cluster.local:9093", got)
}

func TestServiceURL_NoPorts(t *testing.T) {
	got, ok := ServiceURL(service("headless", "ns"), "cluster.local")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestFindURL_FirstMatchWins(t *testing.T) {
	var queried []string
	clientset := fakeWithServices(map[string][]corev1.Service{
		"app=b": {service("second", "monitoring", 9093), service("other", "default", 80)},
		"app=c": {service("third", "monitoring", 9094)},
	}, &queried)

	d := NewDiscoverer(clientset, "")
	url, found, err := d.FindURL(context.Background(), []string{"app=a", "app=b", "app=c"}, "not found")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "http://second.monitoring.svc.cluster.local:9093", url)
	assert.Equal(t, []string{"app=a", "app=b"}, queried, "discovery must stop at the first match")
}

func TestFindURL_CustomDomain(t *testing.T) {
	var queried []string
	clientset := fakeWithServices(map[string][]corev1.Service{
		"app=a": {service("am", "obs", 9093, 8080)},
	}, &queried)

	url, found, err := NewDiscoverer(clientset, "corp.internal").FindURL(context.Background(), []string{"app=a"}, "")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "http://am.obs.svc.corp.internal:9093", url)
}

func TestFindURL_NotFoundLogsFallbackAtDebug(t *testing.T) {
	tests := []struct {
		name      string
		selectors []string
	}{
		{name: "empty selector list", selectors: nil},
		{name: "no selector matches", selectors: []string{"app=a", "app=b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logging.InitForCLI(logging.LevelDebug, &buf)

			var queried []string
			clientset := fakeWithServices(nil, &queried)

			url, found, err := NewDiscoverer(clientset, "").FindURL(context.Background(), tt.selectors, "routing service missing")
			require.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, url)
			assert.Len(t, queried, len(tt.selectors))
			assert.Contains(t, buf.String(), "level=DEBUG")
			assert.Contains(t, buf.String(), "routing service missing")
		})
	}
}

func TestFindURL_SkipsServiceWithoutPorts(t *testing.T) {
	var queried []string
	clientset := fakeWithServices(map[string][]corev1.Service{
		"app=a": {service("headless", "ns")},
		"app=b": {service("am", "ns", 9093)},
	}, &queried)

	url, found, err := NewDiscoverer(clientset, "").FindURL(context.Background(), []string{"app=a", "app=b"}, "")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "http://am.ns.svc.cluster.local:9093", url)
}

func TestFindURL_ListError(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	clientset.PrependReactor("list", "services", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("forbidden")
	})

	_, found, err := NewDiscoverer(clientset, "").FindURL(context.Background(), []string{"app=a"}, "")
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), `selector "app=a"`)
}

func TestFindURL_AgainstTracker(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		&corev1.Service{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "prometheus-alertmanager",
				Namespace: "monitoring",
				Labels:    map[string]string{"app": "prometheus", "component": "alertmanager"},
			},
			Spec: corev1.ServiceSpec{Ports: []corev1.ServicePort{{Port: 9093}}},
		},
		&corev1.Service{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default", Labels: map[string]string{"app": "web"}},
			Spec:       corev1.ServiceSpec{Ports: []corev1.ServicePort{{Port: 80}}},
		},
	)

	url, found, err := NewDiscoverer(clientset, "").FindURL(context.Background(), AlertManagerSelectors, AlertManagerNotFoundMessage)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "http://prometheus-alertmanager.monitoring.svc.cluster.local:9093", url)
}

func TestAlertManagerSelectors(t *testing.T) {
	assert.Len(t, AlertManagerSelectors, 9)
	assert.Equal(t, "app=kube-prometheus-stack-alertmanager", AlertManagerSelectors[0])
}

func TestFindService_ReturnsMatchedService(t *testing.T) {
	var queried []string
	clientset := fakeWithServices(map[string][]corev1.Service{
		"app=b": {service("am", "obs", 9093)},
	}, &queried)

	svc, found, err := NewDiscoverer(clientset, "").FindService(context.Background(), []string{"app=a", "app=b", "app=c"}, "")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "obs", svc.Namespace)
	assert.Equal(t, "am", svc.Name)
	assert.Equal(t, []string{"app=a", "app=b"}, queried)
}
