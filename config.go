package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultDBName    = "proofs.db"
	defaultDBTimeout = 10 * time.Second
	defaultLogLevel  = "info"
)

var (
	defaultAppDataDir = btcutil.AppDataDir("bpcore", false)
)

type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	AppDataDir  string `short:"A" long:"appdata" description:"Application data directory for the proof database"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	DBTimeout   time.Duration `long:"dbtimeout" description:"The timeout value to use when opening the proof database"`
	DBPass      string `long:"dbpass" default-mask:"-" description:"Password encrypting stored proofs; omit for plaintext records"`

	// Commitment operations; exactly one must be chosen.
	Commit bool `long:"commit" description:"Embed a message commitment and print the resulting scriptPubkey"`
	Verify bool `long:"verify" description:"Reconstruct a stored proof against an observed scriptPubkey and verify the commitment"`

	// Commitment inputs.
	Tag         string `long:"tag" description:"Human-readable protocol tag the commitment is made under"`
	Pubkey      string `long:"pubkey" description:"Hex-encoded compressed public key to commit with"`
	LockScript  string `long:"lockscript" description:"Hex-encoded lock script embedding the public key"`
	TaprootRoot string `long:"taprootroot" description:"Hex-encoded taproot script-tree root hash"`
	Composition string `long:"composition" description:"scriptPubkey composition to render (pubkey, pubkey-hash, script-hash, witness-pubkey-hash, witness-script-hash, sh-witness-pubkey-hash, sh-witness-script-hash, taproot, op-return, plain-script)"`
	Message     string `long:"message" description:"Hex-encoded message to commit to"`
	Script      string `long:"script" description:"Hex-encoded observed scriptPubkey to verify against"`
}

// loadConfig parses command line options, applying defaults first. The
// returned config always has its data directory created.
func loadConfig() (*config, error) {
	cfg := config{
		AppDataDir: defaultAppDataDir,
		DebugLevel: defaultLogLevel,
		DBTimeout:  defaultDBTimeout,
	}

	if _, err := flags.Parse(&cfg); err != nil {
		return nil, err
	}

	if cfg.ShowVersion {
		fmt.Printf("%s version %s\n", filepath.Base(os.Args[0]),
			version())
		os.Exit(0)
	}

	if _, ok := validLogLevels[cfg.DebugLevel]; !ok {
		return nil, fmt.Errorf("the specified debug level %q is "+
			"invalid", cfg.DebugLevel)
	}

	if cfg.Commit == cfg.Verify {
		return nil, fmt.Errorf("exactly one of --commit and " +
			"--verify must be given")
	}
	if cfg.Tag == "" {
		return nil, fmt.Errorf("a protocol --tag is required")
	}
	if cfg.Message == "" {
		return nil, fmt.Errorf("a --message is required")
	}
	if cfg.LockScript != "" && cfg.TaprootRoot != "" {
		return nil, fmt.Errorf("--lockscript and --taprootroot are " +
			"mutually exclusive")
	}

	if err := os.MkdirAll(cfg.AppDataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &cfg, nil
}

func (cfg *config) dbPath() string {
	return filepath.Join(cfg.AppDataDir, defaultDBName)
}
