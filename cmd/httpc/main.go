package main

import (
	"os"

	"github.com/philippludwig/libsimplehttp/cmd/httpc/cmd"
)

func main() {
	if err := cmd.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
