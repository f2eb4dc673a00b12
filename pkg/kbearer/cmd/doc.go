// Package cmd implements the cobra command tree for the kbearer CLI: reading
// the kubeconfig token, inspecting its claims, sending authorized requests,
// and managing the tool configuration.
package cmd
