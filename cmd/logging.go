package cmd

import (
	"os"

	"github.com/achilleasa/diorama/log"
	"github.com/urfave/cli"
)

var logger = log.New("diorama")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	// An explicit level always wins over the verbosity flags
	if levelName := os.Getenv("DIORAMA_LOG_LEVEL"); levelName != "" {
		level, err := log.ParseLevel(levelName)
		if err != nil {
			logger.Warningf("ignoring DIORAMA_LOG_LEVEL: %s", err.Error())
			return
		}
		log.SetLevel(level)
	}
}
