package pubkeyscript

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// DescriptorType identifies the standard shape of an observed scriptPubkey.
type DescriptorType uint8

const (
	// DescriptorPubkey is a bare pay-to-pubkey output.
	DescriptorPubkey DescriptorType = iota

	// DescriptorPubkeyHash is a legacy pay-to-pubkey-hash output.
	DescriptorPubkeyHash

	// DescriptorScriptHash is a legacy pay-to-script-hash output. The
	// script it hashes may itself be a nested witness program, which the
	// descriptor alone cannot tell apart.
	DescriptorScriptHash

	// DescriptorWitnessPubkeyHash is a native segwit v0 pay-to-witness-
	// pubkey-hash output.
	DescriptorWitnessPubkeyHash

	// DescriptorWitnessScriptHash is a native segwit v0 pay-to-witness-
	// script-hash output.
	DescriptorWitnessScriptHash

	// DescriptorTaproot is a segwit v1 taproot output.
	DescriptorTaproot

	// DescriptorNullData is a provably unspendable OP_RETURN output.
	DescriptorNullData

	// DescriptorPlain is any script that matches none of the standard
	// templates and is interpreted as an exposed plain script.
	DescriptorPlain
)

var descriptorNames = map[DescriptorType]string{
	DescriptorPubkey:            "pubkey",
	DescriptorPubkeyHash:        "pubkeyhash",
	DescriptorScriptHash:        "scripthash",
	DescriptorWitnessPubkeyHash: "witness-pubkeyhash",
	DescriptorWitnessScriptHash: "witness-scripthash",
	DescriptorTaproot:           "taproot",
	DescriptorNullData:          "nulldata",
	DescriptorPlain:             "plain",
}

func (t DescriptorType) String() string {
	if name, ok := descriptorNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown descriptor (%d)", uint8(t))
}

// Descriptor is the result of classifying an observed scriptPubkey. For
// plain (non-standard) scripts the raw script bytes are retained since they
// become part of the reclassified proof.
type Descriptor struct {
	Type   DescriptorType
	Script []byte
}

// Classify parses an observed scriptPubkey into its standard descriptor.
// Scripts matching no standard template classify as DescriptorPlain rather
// than failing, mirroring how exposed scripts are committed to directly.
func Classify(pkScript []byte) Descriptor {
	switch txscript.GetScriptClass(pkScript) {
	case txscript.PubKeyTy:
		return Descriptor{Type: DescriptorPubkey}
	case txscript.PubKeyHashTy:
		return Descriptor{Type: DescriptorPubkeyHash}
	case txscript.ScriptHashTy:
		return Descriptor{Type: DescriptorScriptHash}
	case txscript.WitnessV0PubKeyHashTy:
		return Descriptor{Type: DescriptorWitnessPubkeyHash}
	case txscript.WitnessV0ScriptHashTy:
		return Descriptor{Type: DescriptorWitnessScriptHash}
	case txscript.WitnessV1TaprootTy:
		return Descriptor{Type: DescriptorTaproot}
	case txscript.NullDataTy:
		return Descriptor{Type: DescriptorNullData}
	default:
		script := make([]byte, len(pkScript))
		copy(script, pkScript)
		return Descriptor{Type: DescriptorPlain, Script: script}
	}
}
