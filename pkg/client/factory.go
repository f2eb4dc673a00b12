package client

import (
	"github.com/telekom/kube-bearer/pkg/kubeconfig"
)

// TokenGetter supplies the bearer token. *kubeconfig.TokenReader implements it.
type TokenGetter interface {
	GetToken() (string, error)
}

// Builder turns a base URL and default headers into a Client.
type Builder interface {
	Build(baseURL string, headers map[string]string) (*Client, error)
}

// RestyBuilder is the default Builder. Options are applied before the base
// URL and headers, so they cannot replace the Authorization header.
type RestyBuilder struct {
	Options []Option
}

func (b RestyBuilder) Build(baseURL string, headers map[string]string) (*Client, error) {
	opts := make([]Option, 0, len(b.Options)+2)
	opts = append(opts, b.Options...)
	opts = append(opts, WithBaseURL(baseURL), WithHeaders(headers))
	return New(opts...)
}

type Factory struct {
	tokens  TokenGetter
	builder Builder
}

// NewFactory returns a Factory; a nil builder means RestyBuilder{}.
func NewFactory(tokens TokenGetter, builder Builder) *Factory {
	if builder == nil {
		builder = RestyBuilder{}
	}
	return &Factory{tokens: tokens, builder: builder}
}

// NewClient reads the token once and builds a client for baseURL that sends
// "Authorization: Bearer <token>". Token errors are returned unchanged and no
// client is built.
func (f *Factory) NewClient(baseURL string) (*Client, error) {
	token, err := f.tokens.GetToken()
	if err != nil {
		return nil, err
	}
	return f.builder.Build(baseURL, map[string]string{AuthorizationHeader: BearerValue(token)})
}

// CreateClient builds a client for baseURL using the token of the current
// user in the default kubeconfig.
func CreateClient(baseURL string, opts ...Option) (*Client, error) {
	tokens := kubeconfig.NewTokenReader(kubeconfig.NewLoader())
	return NewFactory(tokens, RestyBuilder{Options: opts}).NewClient(baseURL)
}
