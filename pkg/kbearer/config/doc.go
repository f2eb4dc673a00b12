// Package config loads and saves the kbearer tool configuration: named
// targets (API endpoints), the kubeconfig to read tokens from, and output
// and timeout settings.
package config
