package proofstore

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/crisdut/bp-core/dbc"
)

// proofRecordVersion is the leading byte of every serialized proof record.
const proofRecordVersion byte = 1

// Script info discriminants within a serialized proof.
const (
	scriptInfoNone       byte = 0
	scriptInfoLockScript byte = 1
	scriptInfoTaproot    byte = 2
)

// serializeProof renders a proof into its compact binary record form:
// version byte, compressed pubkey, script info discriminant, then the
// discriminant-specific payload (var-bytes lock script or 32-byte taproot
// root).
func serializeProof(proof dbc.Proof) ([]byte, error) {
	if proof.Pubkey == nil || proof.ScriptInfo == nil {
		return nil, fmt.Errorf("incomplete proof")
	}

	var buf bytes.Buffer
	buf.WriteByte(proofRecordVersion)
	buf.Write(proof.Pubkey.SerializeCompressed())

	switch info := proof.ScriptInfo.(type) {
	case dbc.ScriptInfoNone:
		buf.WriteByte(scriptInfoNone)

	case dbc.ScriptInfoLockScript:
		buf.WriteByte(scriptInfoLockScript)
		err := wire.WriteVarBytes(&buf, 0, info.Script)
		if err != nil {
			return nil, err
		}

	case dbc.ScriptInfoTaproot:
		buf.WriteByte(scriptInfoTaproot)
		buf.Write(info.Root[:])

	default:
		return nil, fmt.Errorf("unknown script info %T",
			proof.ScriptInfo)
	}

	return buf.Bytes(), nil
}

// deserializeProof parses a binary proof record back into a proof.
func deserializeProof(record []byte) (dbc.Proof, error) {
	r := bytes.NewReader(record)

	version, err := r.ReadByte()
	if err != nil {
		return dbc.Proof{}, fmt.Errorf("reading record version: %w",
			err)
	}
	if version != proofRecordVersion {
		return dbc.Proof{}, fmt.Errorf("unknown proof record "+
			"version %d", version)
	}

	var keyBytes [btcec.PubKeyBytesLenCompressed]byte
	if _, err := io.ReadFull(r, keyBytes[:]); err != nil {
		return dbc.Proof{}, fmt.Errorf("reading pubkey: %w", err)
	}
	pubkey, err := btcec.ParsePubKey(keyBytes[:])
	if err != nil {
		return dbc.Proof{}, fmt.Errorf("parsing pubkey: %w", err)
	}

	discriminant, err := r.ReadByte()
	if err != nil {
		return dbc.Proof{}, fmt.Errorf("reading script info: %w", err)
	}

	var scriptInfo dbc.ScriptInfo
	switch discriminant {
	case scriptInfoNone:
		scriptInfo = dbc.ScriptInfoNone{}

	case scriptInfoLockScript:
		script, err := wire.ReadVarBytes(
			r, 0, maxLockScriptSize, "lock script",
		)
		if err != nil {
			return dbc.Proof{}, fmt.Errorf("reading lock "+
				"script: %w", err)
		}
		scriptInfo = dbc.ScriptInfoLockScript{Script: script}

	case scriptInfoTaproot:
		var root chainhash.Hash
		if _, err := io.ReadFull(r, root[:]); err != nil {
			return dbc.Proof{}, fmt.Errorf("reading taproot "+
				"root: %w", err)
		}
		scriptInfo = dbc.ScriptInfoTaproot{Root: root}

	default:
		return dbc.Proof{}, fmt.Errorf("unknown script info "+
			"discriminant %d", discriminant)
	}

	if r.Len() != 0 {
		return dbc.Proof{}, fmt.Errorf("%d trailing bytes in proof "+
			"record", r.Len())
	}

	return dbc.Proof{Pubkey: pubkey, ScriptInfo: scriptInfo}, nil
}

// maxLockScriptSize bounds lock scripts read back from disk; consensus caps
// scripts at 10000 bytes.
const maxLockScriptSize = 10000
