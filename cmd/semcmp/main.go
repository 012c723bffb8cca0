package main

import (
	"github.com/NVIDIA/semcmp/pkg/cli"
)

func main() {
	cli.Execute()
}
