// Package client builds HTTP clients that send the current kubeconfig user's
// token as "Authorization: Bearer <token>" on every request, on top of resty.
package client
