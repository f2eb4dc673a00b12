package main

import (
	"os"

	kbearercmd "github.com/telekom/kube-bearer/pkg/kbearer/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := kbearercmd.NewRootCommand(kbearercmd.DefaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
