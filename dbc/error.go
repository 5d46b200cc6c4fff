package dbc

import (
	"errors"
)

var (
	// ErrInvalidProofStructure is returned when the shape of an observed
	// scriptPubkey disagrees with the supplied proof, or when a
	// composition is paired with script info it cannot host. It indicates
	// a forged or corrupted proof, or a caller bug, and always aborts the
	// current commitment attempt.
	ErrInvalidProofStructure = errors.New("proof structure does not match script")

	// ErrTaprootUnsupported is returned when assembling a final taproot
	// scriptPubkey. The taproot tweak itself is computed and recorded;
	// the output script encoding rule is not defined yet.
	ErrTaprootUnsupported = errors.New("taproot scriptPubkey assembly not supported")

	// ErrCommitmentMismatch is returned by verification when a recomputed
	// commitment does not reproduce the observed one.
	ErrCommitmentMismatch = errors.New("commitment does not match")

	// ErrUnusableTweak is returned in the negligible-probability case
	// where a derived tweaking factor is zero, exceeds the curve order,
	// or lands the tweaked key on the point at infinity.
	ErrUnusableTweak = errors.New("derived tweaking factor is unusable")

	// ErrPubkeyNotFound is returned when a lock script does not contain
	// the serialized public key the proof claims it embeds.
	ErrPubkeyNotFound = errors.New("pubkey not found in lock script")
)
