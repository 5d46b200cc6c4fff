package dbc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ScriptInfo describes which primitive of a scriptPubkey hosts the
// commitment. Exactly one of the three implementations is active for any
// proof: no script (bare key), an explicit lock script, or a taproot
// script-tree root.
//
// The interface is sealed: the unexported marker method restricts
// implementations to this package, so no external type can satisfy the
// conversion contracts of the commitment containers.
type ScriptInfo interface {
	scriptInfo()
}

// ScriptInfoNone marks a commitment hosted directly by a bare public key.
type ScriptInfoNone struct{}

// ScriptInfoLockScript marks a commitment hosted by the public key embedded
// in an explicit locking script.
type ScriptInfoLockScript struct {
	// Script is the raw serialized lock script prior to any commitment
	// being embedded.
	Script []byte
}

// ScriptInfoTaproot marks a commitment anchored to a taproot output; Root is
// the merkle root of the script tree the internal key commits to.
type ScriptInfoTaproot struct {
	Root chainhash.Hash
}

func (ScriptInfoNone) scriptInfo()       {}
func (ScriptInfoLockScript) scriptInfo() {}
func (ScriptInfoTaproot) scriptInfo()    {}

// Proof is the minimal publicly-shareable description of what was committed:
// the original (untweaked) public key together with the script info that
// locates it. It is the durable artifact a verifier must hold independently
// of the on-chain script; containers are reconstructed from it.
type Proof struct {
	Pubkey     *btcec.PublicKey
	ScriptInfo ScriptInfo
}

// LockScript returns the lock script carried by the proof, or nil when the
// proof commits to a bare key or a taproot output.
func (p Proof) LockScript() []byte {
	if info, ok := p.ScriptInfo.(ScriptInfoLockScript); ok {
		return info.Script
	}
	return nil
}

// TaprootRoot returns the taproot script-tree root carried by the proof and
// whether one is present.
func (p Proof) TaprootRoot() (chainhash.Hash, bool) {
	if info, ok := p.ScriptInfo.(ScriptInfoTaproot); ok {
		return info.Root, true
	}
	return chainhash.Hash{}, false
}
