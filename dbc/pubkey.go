package dbc

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// PubkeyContainer hosts a commitment in a bare public key via the
// pay-to-contract tweak. It is the leaf container every script-level
// commitment ultimately delegates to.
type PubkeyContainer struct {
	// Pubkey is the original, untweaked public key.
	Pubkey *btcec.PublicKey

	// Tag is the single SHA256 hash identifying the commitment protocol.
	Tag chainhash.Hash

	// TweakingFactor records the scalar applied during EmbedCommit. It
	// is nil until a commitment has been embedded and is written exactly
	// once per embedding.
	TweakingFactor *TweakingFactor
}

// PubkeyCommitment is a public key carrying an embedded message commitment.
type PubkeyCommitment struct {
	Pubkey *btcec.PublicKey
}

// ReconstructPubkey rebuilds a pubkey container from its proof and protocol
// tag given an observed committed key. The proof must carry no script info.
func ReconstructPubkey(proof Proof, supplement chainhash.Hash,
	host *PubkeyCommitment) (*PubkeyContainer, error) {

	if _, ok := proof.ScriptInfo.(ScriptInfoNone); !ok {
		return nil, ErrInvalidProofStructure
	}
	if host == nil || host.Pubkey == nil {
		return nil, ErrInvalidProofStructure
	}

	return &PubkeyContainer{
		Pubkey: proof.Pubkey,
		Tag:    supplement,
	}, nil
}

// EmbedCommit embeds msg into the container's public key, returning the
// tweaked key and recording the applied tweaking factor in the container.
func (c *PubkeyContainer) EmbedCommit(msg []byte) (*PubkeyCommitment, error) {
	factor := deriveTweakingFactor(c.Tag, c.Pubkey, msg)
	tweaked, err := tweakPubkey(c.Pubkey, factor)
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = &factor
	return &PubkeyCommitment{Pubkey: tweaked}, nil
}

// Verify recomputes the commitment for msg and checks that it reproduces the
// observed committed key bit for bit.
func (c *PubkeyContainer) Verify(commitment *PubkeyCommitment,
	msg []byte) error {

	recomputed, err := c.EmbedCommit(msg)
	if err != nil {
		return err
	}
	if !bytes.Equal(
		recomputed.Pubkey.SerializeCompressed(),
		commitment.Pubkey.SerializeCompressed(),
	) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Proof projects the container back to its durable proof.
func (c *PubkeyContainer) Proof() Proof {
	return Proof{
		Pubkey:     c.Pubkey,
		ScriptInfo: ScriptInfoNone{},
	}
}

// Deconstruct strips the container back to its shareable artifacts.
func (c *PubkeyContainer) Deconstruct() (Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

var _ Container = (*PubkeyContainer)(nil)
