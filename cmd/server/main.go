package main

import (
	"github.com/luppa-project/luppa/internal/server"
	"github.com/luppa-project/luppa/internal/util"
	"github.com/luppa-project/luppa/pkg/logger"
	"github.com/luppa-project/luppa/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
