package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/telekom/kube-bearer/pkg/kbearer/config"
)

func WriteTargetTable(w io.Writer, targets []config.Target, current string) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CURRENT\tNAME\tSERVER\tCA-FILE\tINSECURE")
	for _, t := range targets {
		marker := ""
		if t.Name == current {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", marker, t.Name, t.Server, dashIfEmpty(t.CAFile), t.InsecureSkipTLSVerify)
	}
	_ = tw.Flush()
}

// WriteClaimTable prints claims sorted by name.
func WriteClaimTable(w io.Writer, claims map[string]any) {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CLAIM\tVALUE")
	for _, k := range keys {
		_, _ = fmt.Fprintf(tw, "%s\t%v\n", k, claims[k])
	}
	_ = tw.Flush()
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
