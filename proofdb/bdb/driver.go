// Package bdb registers a bbolt-backed driver for the proofdb interface
// under the database type "bdb".
package bdb

import (
	"fmt"
	"time"

	"github.com/crisdut/bp-core/proofdb"
)

const (
	dbType = "bdb"
)

func parseArgs(funcName string,
	args ...interface{}) (string, time.Duration, error) {

	if len(args) != 2 {
		return "", 0, fmt.Errorf("invalid arguments to %s.%s -- "+
			"expected database path and timeout option",
			dbType, funcName)
	}

	dbPath, ok := args[0].(string)
	if !ok {
		return "", 0, fmt.Errorf("first argument to %s.%s is "+
			"invalid -- expected database path string", dbType,
			funcName)
	}

	timeout, ok := args[1].(time.Duration)
	if !ok {
		return "", 0, fmt.Errorf("second argument to %s.%s is "+
			"invalid -- expected timeout time.Duration", dbType,
			funcName)
	}

	return dbPath, timeout, nil
}

func openDBDriver(args ...interface{}) (proofdb.DB, error) {
	dbPath, timeout, err := parseArgs("Open", args...)
	if err != nil {
		return nil, err
	}

	return openDB(dbPath, false, timeout)
}

func createDBDriver(args ...interface{}) (proofdb.DB, error) {
	dbPath, timeout, err := parseArgs("Create", args...)
	if err != nil {
		return nil, err
	}

	return openDB(dbPath, true, timeout)
}

func init() {
	driver := proofdb.Driver{
		DBType: dbType,
		Create: createDBDriver,
		Open:   openDBDriver,
	}
	if err := proofdb.RegisterDriver(driver); err != nil {
		panic(fmt.Sprintf("failed to register database driver %q: %v",
			dbType, err))
	}
}
