package main

import (
	"github.com/matchaproject/matcha/cmd/matcha/cmd"
	"github.com/matchaproject/matcha/internal/common"
)

func main() {
	common.ConfigureLogging()
	cmd.Execute()
}
