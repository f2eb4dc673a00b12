// Package metrics defines Prometheus metrics for kube-bearer, covering
// kubeconfig loads and requests issued through the authorized client.
package metrics
