// Package kubeconfig reads the bearer token of the current kubeconfig user.
// Loading is delegated to client-go's clientcmd; a missing user or token
// resolves to an empty token, while load failures are returned to the caller.
package kubeconfig
