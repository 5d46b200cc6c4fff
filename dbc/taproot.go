package dbc

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TaprootContainer hosts a commitment in a taproot internal key. The
// script-tree root rides along unchanged; only the intermediate (internal)
// key is tweaked. How the resulting pair combines into a final taproot
// scriptPubkey is left to the script-level container.
type TaprootContainer struct {
	// ScriptRoot is the merkle root of the taproot script tree.
	ScriptRoot chainhash.Hash

	// IntermediateKey is the untweaked taproot internal key.
	IntermediateKey *btcec.PublicKey

	// Tag is the single SHA256 hash identifying the commitment protocol.
	Tag chainhash.Hash

	// TweakingFactor records the scalar applied during EmbedCommit.
	TweakingFactor *TweakingFactor
}

// TaprootCommitment is a taproot internal key carrying an embedded message
// commitment, together with the untouched script-tree root it will be
// combined with.
type TaprootCommitment struct {
	IntermediateKey *btcec.PublicKey
	ScriptRoot      chainhash.Hash
}

// ReconstructTaproot rebuilds a taproot container from its proof and
// protocol tag given an observed committed internal key. The proof must
// carry a taproot script-tree root.
func ReconstructTaproot(proof Proof, supplement chainhash.Hash,
	host *TaprootCommitment) (*TaprootContainer, error) {

	info, ok := proof.ScriptInfo.(ScriptInfoTaproot)
	if !ok {
		return nil, ErrInvalidProofStructure
	}
	if host == nil || host.IntermediateKey == nil {
		return nil, ErrInvalidProofStructure
	}

	return &TaprootContainer{
		ScriptRoot:      info.Root,
		IntermediateKey: proof.Pubkey,
		Tag:             supplement,
	}, nil
}

// EmbedCommit embeds msg into the internal key, recording the applied
// tweaking factor. The script-tree root is carried through untouched.
func (c *TaprootContainer) EmbedCommit(msg []byte) (*TaprootCommitment,
	error) {

	factor := deriveTweakingFactor(c.Tag, c.IntermediateKey, msg)
	tweaked, err := tweakPubkey(c.IntermediateKey, factor)
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = &factor
	return &TaprootCommitment{
		IntermediateKey: tweaked,
		ScriptRoot:      c.ScriptRoot,
	}, nil
}

// Verify recomputes the commitment for msg and checks that it reproduces the
// observed committed internal key and root exactly.
func (c *TaprootContainer) Verify(commitment *TaprootCommitment,
	msg []byte) error {

	recomputed, err := c.EmbedCommit(msg)
	if err != nil {
		return err
	}
	if recomputed.ScriptRoot != commitment.ScriptRoot {
		return ErrCommitmentMismatch
	}
	if !bytes.Equal(
		recomputed.IntermediateKey.SerializeCompressed(),
		commitment.IntermediateKey.SerializeCompressed(),
	) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Proof projects the container back to its durable proof.
func (c *TaprootContainer) Proof() Proof {
	return Proof{
		Pubkey:     c.IntermediateKey,
		ScriptInfo: ScriptInfoTaproot{Root: c.ScriptRoot},
	}
}

// Deconstruct strips the container back to its shareable artifacts.
func (c *TaprootContainer) Deconstruct() (Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

var _ Container = (*TaprootContainer)(nil)
