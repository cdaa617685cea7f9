package main

import (
	"github.com/nilern/scriptjure/cmd"
	_ "github.com/nilern/scriptjure/forms/core"
)

var version = "v0.3.0"

func main() {
	cmd.Execute(version)
}
