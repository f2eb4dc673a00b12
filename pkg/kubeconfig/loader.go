package kubeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/telekom/kube-bearer/pkg/metrics"
)

var ErrConfigNotFound = errors.New("kubeconfig not found")

// ConfigSource loads the token of the current kubeconfig user. ok is false
// when there is no current context, no user for it, or no token on the user.
type ConfigSource interface {
	CurrentUserToken() (token string, ok bool, err error)
}

// Loader is the default ConfigSource. It follows the kubectl search order:
// an explicit path, else the $KUBECONFIG list, else ~/.kube/config.
type Loader struct {
	rules *clientcmd.ClientConfigLoadingRules
	log   *zap.SugaredLogger
}

type LoaderOption func(*Loader)

// WithExplicitPath pins the kubeconfig file. Empty keeps the default search.
func WithExplicitPath(path string) LoaderOption {
	return func(l *Loader) {
		l.rules.ExplicitPath = path
	}
}

func WithLogger(log *zap.SugaredLogger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	// never move legacy files around while reading
	rules.MigrationRules = nil
	l := &Loader{rules: rules, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Paths returns the candidate files in loading order.
func (l *Loader) Paths() []string {
	return l.rules.GetLoadingPrecedence()
}

func (l *Loader) Load() (*clientcmdapi.Config, error) {
	paths := l.Paths()
	if !anyFileExists(paths) {
		metrics.KubeconfigLoads.WithLabelValues(metrics.LoadNotFound).Inc()
		return nil, fmt.Errorf("%w (searched: %s)", ErrConfigNotFound, strings.Join(paths, ", "))
	}
	cfg, err := l.rules.Load()
	if err != nil {
		metrics.KubeconfigLoads.WithLabelValues(metrics.LoadParseError).Inc()
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	metrics.KubeconfigLoads.WithLabelValues(metrics.LoadSuccess).Inc()
	l.log.Debugw("Loaded kubeconfig", "paths", paths, "currentContext", cfg.CurrentContext)
	return cfg, nil
}

func (l *Loader) CurrentUserToken() (string, bool, error) {
	cfg, err := l.Load()
	if err != nil {
		return "", false, err
	}
	name, user, ok := CurrentUser(cfg)
	if !ok {
		l.log.Debugw("No user selected by the current context", "currentContext", cfg.CurrentContext)
		return "", false, nil
	}
	if user.Token == "" {
		l.log.Debugw("Current user has no token", "user", name)
		return "", false, nil
	}
	return user.Token, true, nil
}

// CurrentUser returns the user entry referenced by the current context.
func CurrentUser(cfg *clientcmdapi.Config) (string, *clientcmdapi.AuthInfo, bool) {
	if cfg == nil || cfg.CurrentContext == "" {
		return "", nil, false
	}
	kubeCtx, ok := cfg.Contexts[cfg.CurrentContext]
	if !ok || kubeCtx == nil || kubeCtx.AuthInfo == "" {
		return "", nil, false
	}
	user, ok := cfg.AuthInfos[kubeCtx.AuthInfo]
	if !ok || user == nil {
		return "", nil, false
	}
	return kubeCtx.AuthInfo, user, true
}

func anyFileExists(paths []string) bool {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
