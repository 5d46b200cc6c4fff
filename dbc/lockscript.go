package dbc

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// LockscriptContainer hosts a commitment in the public key embedded within
// an explicit locking script: the key is tweaked and every serialized
// occurrence of it inside the script is replaced with the tweaked form,
// leaving the script template untouched.
type LockscriptContainer struct {
	// Script is the original lock script prior to embedding.
	Script []byte

	// Pubkey is the untweaked key the script embeds.
	Pubkey *btcec.PublicKey

	// Tag is the single SHA256 hash identifying the commitment protocol.
	Tag chainhash.Hash

	// TweakingFactor records the scalar applied during EmbedCommit.
	TweakingFactor *TweakingFactor
}

// LockscriptCommitment is a lock script whose embedded key carries the
// message commitment.
type LockscriptCommitment struct {
	Script []byte
}

// ReconstructLockscript rebuilds a lock-script container from its proof and
// protocol tag given an observed committed script. The proof must carry a
// lock script.
func ReconstructLockscript(proof Proof, supplement chainhash.Hash,
	host *LockscriptCommitment) (*LockscriptContainer, error) {

	info, ok := proof.ScriptInfo.(ScriptInfoLockScript)
	if !ok {
		return nil, ErrInvalidProofStructure
	}
	if host == nil || len(host.Script) == 0 {
		return nil, ErrInvalidProofStructure
	}

	return &LockscriptContainer{
		Script: info.Script,
		Pubkey: proof.Pubkey,
		Tag:    supplement,
	}, nil
}

// EmbedCommit embeds msg into the key the lock script carries, returning the
// script with the tweaked key substituted and recording the applied tweaking
// factor. ErrPubkeyNotFound is returned when the script does not push the
// container's key at all.
func (c *LockscriptContainer) EmbedCommit(msg []byte) (*LockscriptCommitment,
	error) {

	factor := deriveTweakingFactor(c.Tag, c.Pubkey, msg)
	tweaked, err := tweakPubkey(c.Pubkey, factor)
	if err != nil {
		return nil, err
	}

	committed, err := replacePubkey(
		c.Script, c.Pubkey.SerializeCompressed(),
		tweaked.SerializeCompressed(),
	)
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = &factor
	return &LockscriptCommitment{Script: committed}, nil
}

// Verify recomputes the committed script for msg and checks that it matches
// the observed one structurally (byte-for-byte after canonical rebuild).
func (c *LockscriptContainer) Verify(commitment *LockscriptCommitment,
	msg []byte) error {

	recomputed, err := c.EmbedCommit(msg)
	if err != nil {
		return err
	}
	if !bytes.Equal(recomputed.Script, commitment.Script) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Proof projects the container back to its durable proof.
func (c *LockscriptContainer) Proof() Proof {
	return Proof{
		Pubkey:     c.Pubkey,
		ScriptInfo: ScriptInfoLockScript{Script: c.Script},
	}
}

// Deconstruct strips the container back to its shareable artifacts.
func (c *LockscriptContainer) Deconstruct() (Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

var _ Container = (*LockscriptContainer)(nil)

// replacePubkey rebuilds script with every push of oldKey replaced by a push
// of newKey. The script is retokenized rather than byte-substituted so that
// matching bytes spanning opcode boundaries cannot be rewritten.
func replacePubkey(script, oldKey, newKey []byte) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	found := false

	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		data := tokenizer.Data()
		switch {
		case bytes.Equal(data, oldKey):
			builder.AddData(newKey)
			found = true

		case data != nil:
			builder.AddData(data)

		default:
			builder.AddOp(tokenizer.Opcode())
		}
	}
	if err := tokenizer.Err(); err != nil {
		return nil, fmt.Errorf("malformed lock script: %w", err)
	}
	if !found {
		return nil, ErrPubkeyNotFound
	}

	return builder.Script()
}
