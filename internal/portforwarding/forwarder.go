package portforwarding

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"alertctl/pkg/logging"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/portforward"
	"k8s.io/client-go/transport/spdy"
)

const subsystem = "PortForward"

// readyTimeout bounds how long Forward waits for the tunnel to come up.
var readyTimeout = 60 * time.Second

// Session is an open port-forward.
type Session struct {
	localPort uint16
	stopChan  chan struct{}
	done      chan error
	once      sync.Once
}

// URL returns the local base URL of the forwarded service.
func (s *Session) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", s.localPort)
}

// Close stops the forward and waits for it to shut down. Safe to call twice.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.stopChan)
		<-s.done
		logging.Debug(subsystem, "Closed forward on local port %d", s.localPort)
	})
}

// logWriter turns port-forward output into log lines.
type logWriter struct {
	label   string
	asError bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(p))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if w.asError {
			logging.Warn(subsystem, "[%s] %s", w.label, line)
		} else {
			logging.Debug(subsystem, "[%s] %s", w.label, line)
		}
	}
	return len(p), nil
}

// Forward opens a port-forward from a random local port to a ready pod behind
// svc and returns once the tunnel accepts connections.
func Forward(ctx context.Context, restConfig *rest.Config, clientset kubernetes.Interface, svc corev1.Service) (*Session, error) {
	pod, err := ReadyPod(ctx, clientset, svc)
	if err != nil {
		return nil, err
	}
	remotePort, err := TargetPort(svc, pod)
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("%s/%s", svc.Namespace, svc.Name)

	reqURL := clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(svc.Namespace).
		Name(pod.Name).
		SubResource("portforward").
		URL()

	transport, upgrader, err := spdy.RoundTripperFor(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create SPDY round tripper: %w", err)
	}
	dialer := spdy.NewDialer(upgrader, &http.Client{Transport: transport}, http.MethodPost, reqURL)

	stopChan := make(chan struct{})
	readyChan := make(chan struct{})
	ports := []string{fmt.Sprintf("0:%d", remotePort)}
	forwarder, err := portforward.NewOnAddresses(dialer, []string{"127.0.0.1"}, ports, stopChan, readyChan,
		&logWriter{label: label}, &logWriter{label: label, asError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to create port forwarder: %w", err)
	}

	logging.Debug(subsystem, "Forwarding to %s via pod %s port %d", label, pod.Name, remotePort)
	done := make(chan error, 1)
	go func() {
		done <- forwarder.ForwardPorts()
	}()

	abort := func() {
		close(stopChan)
		<-done
	}

	timer := time.NewTimer(readyTimeout)
	defer timer.Stop()
	select {
	case <-readyChan:
	case err := <-done:
		if err == nil {
			err = fmt.Errorf("connection closed")
		}
		return nil, fmt.Errorf("port-forward to %s failed: %w", label, err)
	case <-ctx.Done():
		abort()
		return nil, ctx.Err()
	case <-timer.C:
		abort()
		return nil, fmt.Errorf("port-forward to %s not ready after %s", label, readyTimeout)
	}

	forwarded, err := forwarder.GetPorts()
	if err != nil {
		abort()
		return nil, fmt.Errorf("failed to read bound local port for %s: %w", label, err)
	}
	if len(forwarded) == 0 {
		abort()
		return nil, fmt.Errorf("port-forward to %s bound no local port", label)
	}

	logging.Info(subsystem, "Forwarding 127.0.0.1:%d to %s", forwarded[0].Local, label)
	return &Session{
		localPort: forwarded[0].Local,
		stopChan:  stopChan,
		done:      done,
	}, nil
}
