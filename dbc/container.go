package dbc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Container is the ephemeral working state of one commitment operation,
// linking a Proof and its protocol-specific supplement (the tag hash) to a
// concrete host primitive. Containers are produced either by the committer
// ahead of embedding or by a verifier reconstructing from an observed host;
// both sides can always be stripped back to the shareable artifacts.
//
// Each concrete container also exposes a Reconstruct* constructor taking
// (Proof, supplement, observed host) which classifies and validates the host
// against the proof, failing with ErrInvalidProofStructure on any shape
// disagreement.
type Container interface {
	// Proof projects the container back to its durable proof without
	// consuming it.
	Proof() Proof

	// Deconstruct strips the commitment-specific state, recovering the
	// original shareable artifacts: the proof and the protocol tag.
	// Composition choice and any recorded tweaking factor are discarded.
	Deconstruct() (Proof, chainhash.Hash)
}

// ProtocolTag derives the supplement hash identifying a commitment protocol
// from its human-readable name: a single SHA256 of the name's bytes.
func ProtocolTag(name string) chainhash.Hash {
	return chainhash.HashH([]byte(name))
}
