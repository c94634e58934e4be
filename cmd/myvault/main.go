package main

import (
	"github.com/vrwmiller/myvault/internal/cli"
	"github.com/vrwmiller/myvault/internal/util"
)

func main() {
	if err := cli.Execute(); err != nil {
		util.HandleError(err, "")
	}
}
