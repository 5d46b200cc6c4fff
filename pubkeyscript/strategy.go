package pubkeyscript

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

// Strategy selects how a locking key or script is rendered into a final
// scriptPubkey.
type Strategy uint8

const (
	// StrategyExposed places the key or script directly into the
	// scriptPubkey (pay-to-pubkey or plain script).
	StrategyExposed Strategy = iota

	// StrategyLegacyHashed renders the legacy hashed form: P2PKH for a
	// key, P2SH for a script.
	StrategyLegacyHashed

	// StrategyWitnessV0 renders the native segwit v0 form: P2WPKH for a
	// key, P2WSH for a script.
	StrategyWitnessV0

	// StrategyWitnessScriptHash renders the segwit v0 form nested inside
	// P2SH: P2SH-P2WPKH for a key, P2SH-P2WSH for a script.
	StrategyWitnessScriptHash
)

var strategyNames = map[Strategy]string{
	StrategyExposed:           "exposed",
	StrategyLegacyHashed:      "legacy-hashed",
	StrategyWitnessV0:         "witness-v0",
	StrategyWitnessScriptHash: "sh-wrapped-witness",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown strategy (%d)", uint8(s))
}

// ForPubkey renders the scriptPubkey locking funds to the given public key
// under the requested strategy.
func ForPubkey(strategy Strategy, pubkey *btcec.PublicKey) ([]byte, error) {
	serialized := pubkey.SerializeCompressed()

	switch strategy {
	case StrategyExposed:
		return txscript.NewScriptBuilder().
			AddData(serialized).
			AddOp(txscript.OP_CHECKSIG).
			Script()

	case StrategyLegacyHashed:
		return txscript.NewScriptBuilder().
			AddOp(txscript.OP_DUP).
			AddOp(txscript.OP_HASH160).
			AddData(btcutil.Hash160(serialized)).
			AddOp(txscript.OP_EQUALVERIFY).
			AddOp(txscript.OP_CHECKSIG).
			Script()

	case StrategyWitnessV0:
		return witnessV0Script(btcutil.Hash160(serialized))

	case StrategyWitnessScriptHash:
		witnessProg, err := witnessV0Script(btcutil.Hash160(serialized))
		if err != nil {
			return nil, err
		}
		return legacyScriptHash(witnessProg)

	default:
		return nil, fmt.Errorf("cannot render pubkey script: %v",
			strategy)
	}
}

// ForScript renders the scriptPubkey locking funds to the given script under
// the requested strategy.
func ForScript(strategy Strategy, script []byte) ([]byte, error) {
	switch strategy {
	case StrategyExposed:
		rendered := make([]byte, len(script))
		copy(rendered, script)
		return rendered, nil

	case StrategyLegacyHashed:
		return legacyScriptHash(script)

	case StrategyWitnessV0:
		scriptHash := sha256.Sum256(script)
		return witnessV0Script(scriptHash[:])

	case StrategyWitnessScriptHash:
		scriptHash := sha256.Sum256(script)
		witnessProg, err := witnessV0Script(scriptHash[:])
		if err != nil {
			return nil, err
		}
		return legacyScriptHash(witnessProg)

	default:
		return nil, fmt.Errorf("cannot render lock script: %v",
			strategy)
	}
}

// NullData renders an OP_RETURN scriptPubkey carrying the given payload.
func NullData(payload []byte) ([]byte, error) {
	return txscript.NullDataScript(payload)
}

func legacyScriptHash(script []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(btcutil.Hash160(script)).
		AddOp(txscript.OP_EQUAL).
		Script()
}

func witnessV0Script(program []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(program).
		Script()
}
