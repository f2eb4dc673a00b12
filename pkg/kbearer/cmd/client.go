package cmd

import (
	"errors"

	"github.com/telekom/kube-bearer/pkg/client"
)

func buildClient(rt *runtimeState) (*client.Client, error) {
	if err := rt.EnsureConfigLoaded(); err != nil {
		return nil, err
	}
	options := []client.Option{client.WithLogger(rt.Logger())}
	if rt.cfg.Settings.UserAgent != "" {
		options = append(options, client.WithUserAgent(rt.cfg.Settings.UserAgent))
	}
	timeout, err := rt.cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		options = append(options, client.WithTimeout(timeout))
	}
	if rt.verbose {
		options = append(options, client.WithRequestID())
	}

	server := rt.serverOverride
	if server == "" {
		target, err := rt.ResolveTarget()
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, errors.New("no server configured; pass --server or add a target with 'kbearer config add-target'")
		}
		server = target.Server
		options = append(options, client.WithTLSConfig(target.CAFile, target.InsecureSkipTLSVerify))
	}

	factory := client.NewFactory(rt.tokenReader(), client.RestyBuilder{Options: options})
	return factory.NewClient(server)
}
