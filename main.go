package main

import (
	"log"
	"os"

	"github.com/clubcorinto/resort/internal/app"
	"github.com/clubcorinto/resort/internal/logger"
)

func main() {
	l, err := logger.New()
	if err != nil {
		log.Printf("Failed to init logger: %v", err)
		os.Exit(1)
	}

	var exitCode int

	if err := app.Run(l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	l.Sync()
	os.Exit(exitCode)
}
