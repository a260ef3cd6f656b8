package alerting

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"k8s.io/client-go/kubernetes"
)

// Poster sends alerts straight to a routing service reachable from this machine.
type Poster struct {
	client *http.Client
}

// NewPoster returns a Poster using client, typically built by trust.NewHTTPClient.
func NewPoster(client *http.Client) *Poster {
	return &Poster{client: client}
}

// Post sends alerts to {routingURL}/api/v1/alerts.
func (p *Poster) Post(ctx context.Context, routingURL string, alerts ...DemoAlert) error {
	body, err := EncodeAlerts(alerts...)
	if err != nil {
		return err
	}

	endpoint := AlertsEndpoint(routingURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post alerts to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("routing service %s returned %d: %s", endpoint, resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

// SubmitDirect posts the demo alert from this machine instead of through a
// Job. The routing URL must be reachable locally, so it is required.
func SubmitDirect(ctx context.Context, clientset kubernetes.Interface, poster *Poster, req Request) (Result, error) {
	if req.RoutingURL == "" {
		return Result{}, &RoutingURLRequiredError{}
	}

	pod, err := FirstPod(ctx, clientset, req.Namespaces)
	if err != nil {
		return Result{}, err
	}
	alert, err := alertForPod(req, pod)
	if err != nil {
		return Result{}, err
	}
	if err := poster.Post(ctx, req.RoutingURL, alert); err != nil {
		return Result{}, err
	}
	return Result{RoutingURL: req.RoutingURL, PodName: pod.Name, Namespace: pod.Namespace}, nil
}
