package dbc

import (
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

// TestDeriveTweakingFactor pins the factor to its definition: an HMAC-SHA256
// keyed with the serialized target key over the protocol tag followed by the
// message.
func TestDeriveTweakingFactor(t *testing.T) {
	pubkey, _ := testPubkeys(t)

	mac := hmac.New(sha256.New, pubkey.SerializeCompressed())
	mac.Write(testTag[:])
	mac.Write(testMsg)

	var expected TweakingFactor
	copy(expected[:], mac.Sum(nil))

	require.Equal(t, expected,
		deriveTweakingFactor(testTag, pubkey, testMsg))
	require.Equal(t, expected.String(),
		deriveTweakingFactor(testTag, pubkey, testMsg).String())
}

// TestTweakPubkey verifies the pay-to-contract point arithmetic: the tweaked
// key differs from the original, is deterministic, and stays on the curve.
func TestTweakPubkey(t *testing.T) {
	pubkey, _ := testPubkeys(t)
	factor := deriveTweakingFactor(testTag, pubkey, testMsg)

	tweaked, err := tweakPubkey(pubkey, factor)
	require.NoError(t, err)
	require.NotEqual(
		t, pubkey.SerializeCompressed(),
		tweaked.SerializeCompressed(),
	)
	require.True(t, tweaked.IsOnCurve())

	again, err := tweakPubkey(pubkey, factor)
	require.NoError(t, err)
	require.Equal(
		t, tweaked.SerializeCompressed(),
		again.SerializeCompressed(),
	)
}

// TestTweakPubkeyZeroFactor verifies that a zero scalar is rejected as
// unusable rather than applied as a no-op.
func TestTweakPubkeyZeroFactor(t *testing.T) {
	pubkey, _ := testPubkeys(t)

	_, err := tweakPubkey(pubkey, TweakingFactor{})
	require.ErrorIs(t, err, ErrUnusableTweak)
}

// TestPubkeyContainerRoundTrip walks the leaf container through embed,
// deconstruct, reconstruct and verify.
func TestPubkeyContainerRoundTrip(t *testing.T) {
	pubkey, _ := testPubkeys(t)

	container := &PubkeyContainer{Pubkey: pubkey, Tag: testTag}
	commitment, err := container.EmbedCommit(testMsg)
	require.NoError(t, err)

	proof, tag := container.Deconstruct()
	reconstructed, err := ReconstructPubkey(proof, tag, commitment)
	require.NoError(t, err)

	require.NoError(t, reconstructed.Verify(commitment, testMsg))
	require.Equal(t, *container.TweakingFactor,
		*reconstructed.TweakingFactor)

	err = reconstructed.Verify(commitment, []byte("forged message"))
	require.ErrorIs(t, err, ErrCommitmentMismatch)
}

// TestTaprootContainerRoundTrip walks the taproot container through embed,
// deconstruct, reconstruct and verify, checking that the script root is
// carried through untouched.
func TestTaprootContainerRoundTrip(t *testing.T) {
	pubkey, _ := testPubkeys(t)
	root := chainhash.HashH([]byte("script tree"))

	container := &TaprootContainer{
		ScriptRoot:      root,
		IntermediateKey: pubkey,
		Tag:             testTag,
	}
	commitment, err := container.EmbedCommit(testMsg)
	require.NoError(t, err)
	require.Equal(t, root, commitment.ScriptRoot)
	require.NotEqual(
		t, pubkey.SerializeCompressed(),
		commitment.IntermediateKey.SerializeCompressed(),
	)

	proof, tag := container.Deconstruct()
	require.Equal(t, ScriptInfoTaproot{Root: root}, proof.ScriptInfo)

	reconstructed, err := ReconstructTaproot(proof, tag, commitment)
	require.NoError(t, err)
	require.NoError(t, reconstructed.Verify(commitment, testMsg))

	// A foreign root fails even when the key matches.
	tampered := &TaprootCommitment{
		IntermediateKey: commitment.IntermediateKey,
		ScriptRoot:      chainhash.HashH([]byte("other tree")),
	}
	err = reconstructed.Verify(tampered, testMsg)
	require.ErrorIs(t, err, ErrCommitmentMismatch)
}

// TestProtocolTag pins the tag derivation to a single SHA256 of the protocol
// name.
func TestProtocolTag(t *testing.T) {
	name := "test-protocol/v1"
	require.Equal(t, chainhash.HashH([]byte(name)), ProtocolTag(name))
	require.NotEqual(t, ProtocolTag(name), ProtocolTag(name+"x"))
}
