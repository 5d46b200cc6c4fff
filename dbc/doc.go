// Package dbc implements deterministic bitcoin commitments: embedding an
// arbitrary message into a bitcoin public key or scriptPubkey via the
// pay-to-contract tweak, such that the result stays byte-for-byte a valid
// instance of its claimed script type and is indistinguishable from an
// uncommitted one without the original proof.
//
// The construction path starts from a Proof (the durable, shareable
// description of what is being committed to) and a protocol tag, embeds the
// message through one of the nested per-primitive containers (bare pubkey
// tweak, lock-script embedded-key tweak, taproot internal-key tweak) and
// assembles the final scriptPubkey. The verification path reclassifies an
// observed scriptPubkey against the same Proof and tag, then recomputes the
// tweak for comparison.
package dbc
