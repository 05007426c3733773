package main

import (
	"github.com/buzzlab/relevance/internal/server"
	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/logger"
	"github.com/buzzlab/relevance/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleBackend := console.NewConsoleBackend(console.ConsoleBackendParams{
		Debug: debug,
	})
	logger.Init(consoleBackend)

	server.Init()
}
