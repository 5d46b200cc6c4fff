package dbc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TweakingFactorSize is the size of a tweaking factor in bytes.
const TweakingFactorSize = sha256.Size

// TweakingFactor is the HMAC-SHA256 scalar actually applied during a
// pay-to-contract tweak. It is recorded by every container during embedding
// and retained as the audit trail proving which adjustment was applied.
type TweakingFactor [TweakingFactorSize]byte

// String returns the hex form of the factor.
func (f TweakingFactor) String() string {
	return hex.EncodeToString(f[:])
}

// deriveTweakingFactor computes the commitment scalar for the given target
// key: HMAC-SHA256 keyed by the compressed serialization of the target over
// the protocol tag followed by the message.
func deriveTweakingFactor(tag chainhash.Hash, target *btcec.PublicKey,
	msg []byte) TweakingFactor {

	mac := hmac.New(sha256.New, target.SerializeCompressed())
	mac.Write(tag[:])
	mac.Write(msg)

	var factor TweakingFactor
	copy(factor[:], mac.Sum(nil))
	return factor
}

// tweakPubkey applies a tweaking factor additively to a public key,
// computing P' = P + factor*G. ErrUnusableTweak is returned when the factor
// reduces to zero mod the curve order or the sum is the point at infinity;
// both happen only with negligible probability for hash-derived factors.
func tweakPubkey(pubkey *btcec.PublicKey,
	factor TweakingFactor) (*btcec.PublicKey, error) {

	var scalar btcec.ModNScalar
	scalar.SetBytes((*[TweakingFactorSize]byte)(&factor))
	if scalar.IsZero() {
		return nil, ErrUnusableTweak
	}

	var basePoint, tweakPoint, result btcec.JacobianPoint
	pubkey.AsJacobian(&basePoint)
	btcec.ScalarBaseMultNonConst(&scalar, &tweakPoint)
	btcec.AddNonConst(&basePoint, &tweakPoint, &result)

	if (result.X.IsZero() && result.Y.IsZero()) || result.Z.IsZero() {
		return nil, ErrUnusableTweak
	}

	result.ToAffine()
	return btcec.NewPublicKey(&result.X, &result.Y), nil
}
