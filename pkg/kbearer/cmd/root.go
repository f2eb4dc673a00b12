package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/kube-bearer/pkg/kbearer/config"
	"github.com/telekom/kube-bearer/pkg/kubeconfig"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

type runtimeState struct {
	configPath         string
	cfg                *config.Config
	kubeconfigOverride string
	targetOverride     string
	serverOverride     string
	outputFormat       string
	verbose            bool
	writer             io.Writer
	log                *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:          "kbearer",
		Short:        "Call HTTP APIs with the bearer token of the current kubeconfig user",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.targetOverride == "" {
				rt.targetOverride = os.Getenv("KBEARER_TARGET")
			}
			if rt.serverOverride == "" {
				rt.serverOverride = os.Getenv("KBEARER_SERVER")
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv("KBEARER_OUTPUT")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("KBEARER_VERBOSE"), "true")
			}

			log, err := setupLogger(rt.verbose)
			if err != nil {
				return err
			}
			rt.log = log

			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			return rt.EnsureConfigLoaded()
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to the kbearer config file")
	root.PersistentFlags().StringVar(&rt.kubeconfigOverride, "kubeconfig", "", "Path to the kubeconfig file (defaults to $KUBECONFIG or ~/.kube/config)")
	root.PersistentFlags().StringVarP(&rt.targetOverride, "target", "t", "", "Target name override")
	root.PersistentFlags().StringVar(&rt.serverOverride, "server", "", "Base URL override (bypass targets)")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: text, json, yaml")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable debug logging and request IDs")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewTokenCommand(),
		NewWhoamiCommand(),
		NewRequestCommand(),
		NewConfigCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) Logger() *zap.SugaredLogger {
	if rt.log != nil {
		return rt.log
	}
	return zap.NewNop().Sugar()
}

// EnsureConfigLoaded loads the tool config. A missing file means defaults.
func (rt *runtimeState) EnsureConfigLoaded() error {
	if rt.cfg != nil {
		return nil
	}
	cfg, err := config.LoadOrDefault(rt.configPathValue())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	rt.cfg = cfg
	return nil
}

func (rt *runtimeState) OutputFormat() string {
	if rt.outputFormat != "" {
		return rt.outputFormat
	}
	if rt.cfg != nil && rt.cfg.Settings.OutputFormat != "" {
		return rt.cfg.Settings.OutputFormat
	}
	return "text"
}

func (rt *runtimeState) kubeconfigPath() string {
	if rt.kubeconfigOverride != "" {
		return rt.kubeconfigOverride
	}
	if rt.cfg != nil {
		return rt.cfg.Kubeconfig
	}
	return ""
}

func (rt *runtimeState) tokenReader() *kubeconfig.TokenReader {
	loader := kubeconfig.NewLoader(
		kubeconfig.WithExplicitPath(rt.kubeconfigPath()),
		kubeconfig.WithLogger(rt.Logger()),
	)
	return kubeconfig.NewTokenReader(loader, rt.Logger())
}

// ResolveTarget returns the selected target, or nil when none is configured.
func (rt *runtimeState) ResolveTarget() (*config.Target, error) {
	if rt.cfg == nil {
		return nil, errors.New("config not loaded")
	}
	name := rt.targetOverride
	if name == "" {
		name = rt.cfg.CurrentTargetOrDefault()
	}
	if name == "" {
		return nil, nil
	}
	return rt.cfg.FindTarget(name)
}

func (rt *runtimeState) configPathValue() string {
	if rt.configPath == "" {
		return config.DefaultConfigPath()
	}
	return rt.configPath
}
