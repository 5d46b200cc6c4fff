package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/crisdut/bp-core/bech32str"
	"github.com/crisdut/bp-core/dbc"
	"github.com/crisdut/bp-core/proofdb"
	_ "github.com/crisdut/bp-core/proofdb/bdb"
	"github.com/crisdut/bp-core/proofstore"
	"github.com/crisdut/bp-core/snacl"
)

func main() {
	if err := run(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setLogLevel(cfg.DebugLevel)

	store, cleanup, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tag := dbc.ProtocolTag(cfg.Tag)

	switch {
	case cfg.Commit:
		return runCommit(cfg, store, tag)
	case cfg.Verify:
		return runVerify(cfg, store, tag)
	}
	return nil
}

func openStore(cfg *config) (*proofstore.Store, func(), error) {
	dbPath := cfg.dbPath()

	db, err := proofdb.Open("bdb", dbPath, cfg.DBTimeout)
	if err == proofdb.ErrDbDoesNotExist {
		log.Infof("Creating proof database at %s", dbPath)
		db, err = proofdb.Create("bdb", dbPath, cfg.DBTimeout)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening proof database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Warnf("Failed to close proof database: %v", err)
		}
	}

	var opts []proofstore.Option
	if cfg.DBPass != "" {
		pass := []byte(cfg.DBPass)
		secretKey, err := snacl.NewSecretKey(
			&pass, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
		)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("deriving database "+
				"key: %w", err)
		}
		opts = append(opts, proofstore.WithEncryption(secretKey))
	}

	store, err := proofstore.NewStore(db, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

func runCommit(cfg *config, store *proofstore.Store,
	tag chainhash.Hash) error {

	pubkey, err := parsePubkey(cfg.Pubkey)
	if err != nil {
		return err
	}
	msg, err := hex.DecodeString(cfg.Message)
	if err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}

	scriptInfo, err := parseScriptInfo(cfg)
	if err != nil {
		return err
	}
	composition, err := dbc.ParseComposition(cfg.Composition)
	if err != nil {
		return err
	}

	container := dbc.NewScriptPubkeyContainer(
		tag, pubkey, scriptInfo, composition,
	)
	commitment, err := container.EmbedCommit(msg)
	if err != nil {
		return fmt.Errorf("embedding commitment: %w", err)
	}
	script := commitment.Script()

	id, err := store.Store(tag, script, container.Proof())
	if err != nil {
		return fmt.Errorf("storing proof: %w", err)
	}

	idStr, err := bech32str.EncodeID(id)
	if err != nil {
		return err
	}
	dataStr, err := bech32str.EncodeData(script)
	if err != nil {
		return err
	}

	log.Debugf("Applied tweaking factor %v", container.TweakingFactor)

	fmt.Printf("scriptPubkey: %x\n", script)
	fmt.Printf("commitment id: %s\n", idStr)
	fmt.Printf("payload: %s\n", dataStr)
	return nil
}

func runVerify(cfg *config, store *proofstore.Store,
	tag chainhash.Hash) error {

	script, err := hex.DecodeString(cfg.Script)
	if err != nil {
		return fmt.Errorf("decoding script: %w", err)
	}
	msg, err := hex.DecodeString(cfg.Message)
	if err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}

	id := proofstore.ScriptCommitmentID(script)
	proof, err := store.Fetch(tag, id)
	if err != nil {
		return fmt.Errorf("fetching proof: %w", err)
	}

	container, err := dbc.VerifyScript(proof, tag, script, msg)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	fmt.Printf("commitment valid, tweaking factor %v\n",
		container.TweakingFactor)
	return nil
}

func parsePubkey(encoded string) (*btcec.PublicKey, error) {
	if encoded == "" {
		return nil, fmt.Errorf("a --pubkey is required")
	}
	keyBytes, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding pubkey: %w", err)
	}
	pubkey, err := btcec.ParsePubKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing pubkey: %w", err)
	}
	return pubkey, nil
}

func parseScriptInfo(cfg *config) (dbc.ScriptInfo, error) {
	switch {
	case cfg.LockScript != "":
		script, err := hex.DecodeString(cfg.LockScript)
		if err != nil {
			return nil, fmt.Errorf("decoding lock script: %w",
				err)
		}
		return dbc.ScriptInfoLockScript{Script: script}, nil

	case cfg.TaprootRoot != "":
		root, err := chainhash.NewHashFromStr(cfg.TaprootRoot)
		if err != nil {
			return nil, fmt.Errorf("decoding taproot root: %w",
				err)
		}
		return dbc.ScriptInfoTaproot{Root: *root}, nil

	default:
		return dbc.ScriptInfoNone{}, nil
	}
}
