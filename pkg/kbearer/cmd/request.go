package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func NewRequestCommand() *cobra.Command {
	var (
		method string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "request PATH",
		Short: "Send a request with the kubeconfig bearer token",
		Long: `Send a request to PATH relative to the target server with
"Authorization: Bearer <token>" taken from the current kubeconfig user.
The response body is written to stdout. Non-2xx responses exit with an error.`,
		Example: `  kbearer request /api/v1/namespaces
  kbearer request /items -X POST -d '{"name":"demo"}'
  kbearer request /items -X PUT -d @item.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			body, err := readRequestBody(cmd.InOrStdin(), data)
			if err != nil {
				return err
			}
			c, err := buildClient(rt)
			if err != nil {
				return err
			}
			resp, err := c.Raw(cmd.Context(), strings.ToUpper(method), args[0], body)
			if err != nil {
				return err
			}
			if _, err := rt.Writer().Write(resp.Body()); err != nil {
				return err
			}
			if resp.StatusCode() >= 300 {
				return fmt.Errorf("server returned %s", resp.Status())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "request", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Request body; @file reads a file, @- reads stdin")
	return cmd
}

func readRequestBody(stdin io.Reader, data string) ([]byte, error) {
	switch {
	case data == "":
		return nil, nil
	case data == "@-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(data, "@"):
		content, err := os.ReadFile(strings.TrimPrefix(data, "@"))
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		return content, nil
	default:
		return []byte(data), nil
	}
}
