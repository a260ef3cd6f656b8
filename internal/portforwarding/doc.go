// Package portforwarding opens short-lived client-go port-forwards to
// in-cluster services so that the operator's machine can reach them.
//
// A forward targets one ready pod behind the service and binds a random
// local port on 127.0.0.1:
//
//	session, err := portforwarding.Forward(ctx, restConfig, clientset, svc)
//	if err != nil {
//		return err
//	}
//	defer session.Close()
//	resp, err := http.Get(session.URL() + "/-/healthy")
//
// The forward stays open until Close is called or the connection drops.
package portforwarding
