package main

import (
	"github.com/devforge/pmagent/cmd"
	"github.com/devforge/pmagent/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
