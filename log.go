package main

import (
	"os"

	"github.com/btcsuite/btclog"
)

var (
	backendLog = btclog.NewBackend(os.Stdout)

	log = backendLog.Logger("BPCR")
)

var validLogLevels = map[string]struct{}{
	"trace":    {},
	"debug":    {},
	"info":     {},
	"warn":     {},
	"error":    {},
	"critical": {},
}

// setLogLevel applies a validated debug level to all subsystem loggers.
func setLogLevel(levelName string) {
	level, _ := btclog.LevelFromString(levelName)
	log.SetLevel(level)
}
