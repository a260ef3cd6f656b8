package crashdemo

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func TestDeployment(t *testing.T) {
	d := Deployment("demo")
	assert.Equal(t, DeploymentName, d.Name)
	assert.Equal(t, "demo", d.Namespace)
	assert.Equal(t, d.Spec.Selector.MatchLabels, d.Spec.Template.Labels)
	require.Len(t, d.Spec.Template.Spec.Containers, 1)
	assert.Contains(t, d.Spec.Template.Spec.Containers[0].Command[2], "exit 1")
}

func TestDeployIsIdempotent(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	demo := New(clientset, "")

	require.NoError(t, demo.Deploy(context.Background()))
	require.NoError(t, demo.Deploy(context.Background()))

	_, err := clientset.AppsV1().Deployments(DefaultNamespace).Get(context.Background(), DeploymentName, metav1.GetOptions{})
	assert.NoError(t, err)
}

func TestRemoveMissingIsNotAnError(t *testing.T) {
	assert.NoError(t, New(fake.NewSimpleClientset(), "demo").Remove(context.Background()))
}

func TestRun_CleansUp(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	var out bytes.Buffer

	require.NoError(t, New(clientset, "demo").Run(context.Background(), 0, false, &out))

	_, err := clientset.AppsV1().Deployments("demo").Get(context.Background(), DeploymentName, metav1.GetOptions{})
	assert.Error(t, err, "deployment should be deleted after the demo")
	assert.Contains(t, out.String(), "Complete.")
}

func TestRun_CancelledWaitStillCleansUp(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, New(clientset, "demo").Run(ctx, time.Hour, false, &out))

	list, err := clientset.AppsV1().Deployments("demo").List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestRun_Keep(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	var out bytes.Buffer

	require.NoError(t, New(clientset, "demo").Run(context.Background(), time.Hour, true, &out))

	_, err := clientset.AppsV1().Deployments("demo").Get(context.Background(), DeploymentName, metav1.GetOptions{})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "demo remove")
}

func TestRun_CreateError(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	clientset.PrependReactor("create", "deployments", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("forbidden")
	})

	err := New(clientset, "demo").Run(context.Background(), 0, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}
