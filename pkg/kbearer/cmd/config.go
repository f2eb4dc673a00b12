package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telekom/kube-bearer/pkg/kbearer/config"
	"github.com/telekom/kube-bearer/pkg/kbearer/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the kbearer configuration",
	}
	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigViewCommand(),
		newConfigGetTargetsCommand(),
		newConfigAddTargetCommand(),
		newConfigUseTargetCommand(),
	)
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		force      bool
		kubeconfig string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path := rt.configPathValue()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			cfg := config.DefaultConfig()
			cfg.Kubeconfig = kubeconfig
			if err := config.Save(path, &cfg); err != nil {
				return err
			}
			rt.cfg = &cfg
			_, _ = fmt.Fprintf(rt.Writer(), "Config written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	cmd.Flags().StringVar(&kubeconfig, "kubeconfig-path", "", "Kubeconfig file to read tokens from")
	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(rt.OutputFormat())
			if err != nil {
				return err
			}
			if format == output.FormatText {
				format = output.FormatYAML
			}
			return output.WriteObject(rt.Writer(), format, rt.cfg)
		},
	}
}

func newConfigGetTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-targets",
		Short: "List configured targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(rt.OutputFormat())
			if err != nil {
				return err
			}
			if format != output.FormatText {
				return output.WriteObject(rt.Writer(), format, rt.cfg.Targets)
			}
			output.WriteTargetTable(rt.Writer(), rt.cfg.Targets, rt.cfg.CurrentTargetOrDefault())
			return nil
		},
	}
}

func newConfigAddTargetCommand() *cobra.Command {
	var target config.Target

	cmd := &cobra.Command{
		Use:   "add-target NAME",
		Short: "Add or replace a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			target.Name = args[0]
			if target.Server == "" {
				return errors.New("--url is required")
			}
			replaced := false
			for i := range rt.cfg.Targets {
				if rt.cfg.Targets[i].Name == target.Name {
					rt.cfg.Targets[i] = target
					replaced = true
				}
			}
			if !replaced {
				rt.cfg.Targets = append(rt.cfg.Targets, target)
			}
			if err := rt.cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Target %q saved\n", target.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&target.Server, "url", "", "Base URL of the target")
	cmd.Flags().StringVar(&target.CAFile, "ca-file", "", "CA bundle used to verify the server")
	cmd.Flags().BoolVar(&target.InsecureSkipTLSVerify, "insecure-skip-tls-verify", false, "Skip server certificate verification")
	return cmd
}

func newConfigUseTargetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use-target NAME",
		Short: "Set the current target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if _, err := rt.cfg.FindTarget(args[0]); err != nil {
				return err
			}
			rt.cfg.CurrentTarget = args[0]
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Switched to target %q\n", args[0])
			return nil
		},
	}
}
