package kubeconfig

import (
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// TokenReader resolves the bearer token of the current kubeconfig user.
type TokenReader struct {
	source ConfigSource
	log    *zap.SugaredLogger
}

func NewTokenReader(source ConfigSource, log ...*zap.SugaredLogger) *TokenReader {
	r := &TokenReader{source: source, log: zap.NewNop().Sugar()}
	for _, l := range log {
		if l != nil {
			r.log = l
		}
	}
	return r
}

// GetToken returns the current user's token, or "" when the user or its
// token is absent. Load failures from the source are returned unchanged.
func (r *TokenReader) GetToken() (string, error) {
	token, ok, err := r.source.CurrentUserToken()
	if err != nil {
		return "", err
	}
	if !ok {
		r.log.Debug("No kubeconfig token found, using empty bearer token")
		return "", nil
	}
	return token, nil
}

// TokenSource reads the token once and returns it as a static oauth2 source.
func (r *TokenReader) TokenSource() (oauth2.TokenSource, error) {
	token, err := r.GetToken()
	if err != nil {
		return nil, err
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), nil
}

// GetToken reads the token from the default kubeconfig location.
func GetToken() (string, error) {
	return NewTokenReader(NewLoader()).GetToken()
}
