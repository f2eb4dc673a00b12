package cmd

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cobra"

	"github.com/telekom/kube-bearer/pkg/kbearer/output"
)

func NewTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the bearer token of the current kubeconfig user",
		Long:  "Print the bearer token of the current kubeconfig user. An empty line is printed when the user has no token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			token, err := rt.tokenReader().GetToken()
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(rt.OutputFormat())
			if err != nil {
				return err
			}
			if format == output.FormatText {
				_, err = fmt.Fprintln(rt.Writer(), token)
				return err
			}
			return output.WriteObject(rt.Writer(), format, map[string]string{"token": token})
		},
	}
}

func NewWhoamiCommand() *cobra.Command {
	var showClaims bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity carried by the kubeconfig token",
		Long:  "Decode the kubeconfig token as a JWT without verifying it and print the user it names.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			token, err := rt.tokenReader().GetToken()
			if err != nil {
				return err
			}
			claims, err := parseClaims(token)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(rt.OutputFormat())
			if err != nil {
				return err
			}
			switch {
			case format != output.FormatText:
				return output.WriteObject(rt.Writer(), format, claims)
			case showClaims:
				output.WriteClaimTable(rt.Writer(), claims)
				return nil
			default:
				_, err = fmt.Fprintln(rt.Writer(), subjectFromClaims(claims))
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&showClaims, "claims", false, "Print all claims as a table")
	return cmd
}

func parseClaims(token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, errors.New("current kubeconfig user has no token")
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}
	return claims, nil
}

func subjectFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"email", "preferred_username", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return "unknown"
}
