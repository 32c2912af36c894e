package main

import (
	"flag"
	"fmt"
	"os"

	"roadrush/internal/desktop"
	"roadrush/internal/game"
	"roadrush/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file (defaults to $ROADRUSH_CONFIG)")
	flag.Parse()

	settings, err := game.LoadSettings(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roadrush: %v\n", err)
		os.Exit(2)
	}

	if err := logging.InitLogger(logging.ParseLevel(settings.LogLevel), os.Stderr, settings.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "roadrush: logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseLogger()

	logging.LogInfo("roadrush: starting (log level %s)", settings.LogLevel)
	if err := desktop.Run(settings); err != nil {
		logging.LogError("roadrush: %v", err)
		logging.CloseLogger()
		os.Exit(1)
	}
}
