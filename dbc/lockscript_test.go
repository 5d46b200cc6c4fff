package dbc

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"
)

// TestLockscriptEmbedReplacesKey verifies that embedding substitutes every
// push of the container's key with the tweaked key while leaving the script
// template and all other keys untouched.
func TestLockscriptEmbedReplacesKey(t *testing.T) {
	pubkey1, pubkey2 := testPubkeys(t)
	lockScript := testLockScript(t, pubkey1, pubkey2)

	container := &LockscriptContainer{
		Script: lockScript,
		Pubkey: pubkey1,
		Tag:    testTag,
	}
	commitment, err := container.EmbedCommit(testMsg)
	require.NoError(t, err)
	require.NotNil(t, container.TweakingFactor)

	tweaked, err := tweakPubkey(pubkey1, *container.TweakingFactor)
	require.NoError(t, err)

	committed := commitment.Script
	require.True(t, bytes.Contains(
		committed, tweaked.SerializeCompressed(),
	))
	require.False(t, bytes.Contains(
		committed, pubkey1.SerializeCompressed(),
	))
	require.True(t, bytes.Contains(
		committed, pubkey2.SerializeCompressed(),
	))

	// The template survives the substitution.
	require.Equal(t, len(lockScript), len(committed))
	require.Equal(t, lockScript[0], committed[0])
	require.Equal(
		t, lockScript[len(lockScript)-1],
		committed[len(committed)-1],
	)
}

// TestLockscriptPubkeyNotFound verifies that a script never pushing the
// container's key cannot host a commitment.
func TestLockscriptPubkeyNotFound(t *testing.T) {
	pubkey1, pubkey2 := testPubkeys(t)

	// Script only carries the second key.
	script, err := txscript.NewScriptBuilder().
		AddData(pubkey2.SerializeCompressed()).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	require.NoError(t, err)

	container := &LockscriptContainer{
		Script: script,
		Pubkey: pubkey1,
		Tag:    testTag,
	}
	_, err = container.EmbedCommit(testMsg)
	require.ErrorIs(t, err, ErrPubkeyNotFound)
	require.Nil(t, container.TweakingFactor)
}

// TestLockscriptVerify verifies the recompute-and-compare check and its
// rejection of foreign messages and foreign scripts.
func TestLockscriptVerify(t *testing.T) {
	pubkey1, pubkey2 := testPubkeys(t)
	lockScript := testLockScript(t, pubkey1, pubkey2)

	container := &LockscriptContainer{
		Script: lockScript,
		Pubkey: pubkey1,
		Tag:    testTag,
	}
	commitment, err := container.EmbedCommit(testMsg)
	require.NoError(t, err)

	proof, tag := container.Deconstruct()
	reconstructed, err := ReconstructLockscript(proof, tag, commitment)
	require.NoError(t, err)

	require.NoError(t, reconstructed.Verify(commitment, testMsg))
	require.Equal(t, *container.TweakingFactor,
		*reconstructed.TweakingFactor)

	err = reconstructed.Verify(commitment, []byte("forged message"))
	require.ErrorIs(t, err, ErrCommitmentMismatch)

	err = reconstructed.Verify(
		&LockscriptCommitment{Script: lockScript}, testMsg,
	)
	require.ErrorIs(t, err, ErrCommitmentMismatch)
}

// TestReconstructLockscriptRejectsBareProof verifies that reconstruction
// demands a lock script in the proof.
func TestReconstructLockscriptRejectsBareProof(t *testing.T) {
	pubkey1, pubkey2 := testPubkeys(t)
	lockScript := testLockScript(t, pubkey1, pubkey2)

	proof := Proof{Pubkey: pubkey1, ScriptInfo: ScriptInfoNone{}}
	_, err := ReconstructLockscript(
		proof, testTag, &LockscriptCommitment{Script: lockScript},
	)
	require.ErrorIs(t, err, ErrInvalidProofStructure)
}
