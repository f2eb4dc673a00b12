package kubeconfig

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	token string
	ok    bool
	err   error
	calls int
}

func (f *fakeSource) CurrentUserToken() (string, bool, error) {
	f.calls++
	return f.token, f.ok, f.err
}

func TestTokenReaderGetToken(t *testing.T) {
	loadErr := errors.New("boom")

	tests := []struct {
		name    string
		source  *fakeSource
		want    string
		wantErr error
	}{
		{name: "token present", source: &fakeSource{token: "abc123", ok: true}, want: "abc123"},
		{name: "token absent", source: &fakeSource{}, want: ""},
		{name: "absent ignores stray value", source: &fakeSource{token: "stale", ok: false}, want: ""},
		{name: "load failure", source: &fakeSource{err: loadErr}, wantErr: loadErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := NewTokenReader(tt.source).GetToken()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, token)
			}
			assert.Equal(t, 1, tt.source.calls)
		})
	}
}

func TestTokenReaderWithKubeconfigFiles(t *testing.T) {
	t.Run("token", func(t *testing.T) {
		r := NewTokenReader(NewLoader(WithExplicitPath(writeKubeconfig(t, kubeconfigWithToken))))
		token, err := r.GetToken()
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("no token field", func(t *testing.T) {
		r := NewTokenReader(NewLoader(WithExplicitPath(writeKubeconfig(t, kubeconfigUserWithoutToken))))
		token, err := r.GetToken()
		require.NoError(t, err)
		assert.Equal(t, "", token)
	})

	t.Run("no current user", func(t *testing.T) {
		r := NewTokenReader(NewLoader(WithExplicitPath(writeKubeconfig(t, kubeconfigWithoutCurrentContext))))
		token, err := r.GetToken()
		require.NoError(t, err)
		assert.Equal(t, "", token)
	})

	t.Run("missing file", func(t *testing.T) {
		r := NewTokenReader(NewLoader(WithExplicitPath(filepath.Join(t.TempDir(), "nope"))))
		_, err := r.GetToken()
		require.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("malformed file", func(t *testing.T) {
		r := NewTokenReader(NewLoader(WithExplicitPath(writeKubeconfig(t, kubeconfigMalformed))))
		_, err := r.GetToken()
		require.Error(t, err)
	})
}

func TestPackageGetTokenUsesDefaultLocation(t *testing.T) {
	t.Setenv("KUBECONFIG", writeKubeconfig(t, kubeconfigWithToken))

	token, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestTokenSource(t *testing.T) {
	r := NewTokenReader(&fakeSource{token: "abc123", ok: true})
	src, err := r.TokenSource()
	require.NoError(t, err)

	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())

	_, err = NewTokenReader(&fakeSource{err: ErrConfigNotFound}).TokenSource()
	require.ErrorIs(t, err, ErrConfigNotFound)
}
