package pubkeyscript

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"
)

var testKeyBytes = []byte{
	0x6b, 0x9c, 0x3a, 0x9e, 0x11, 0x44, 0x21, 0x73,
	0x55, 0x9d, 0x6e, 0xa1, 0x6, 0x9e, 0xb1, 0x22,
	0xd0, 0x72, 0x4c, 0x3d, 0xe2, 0x55, 0x1b, 0x6c,
	0x7a, 0x3c, 0x3a, 0xe1, 0x88, 0xf2, 0x6e, 0x16,
}

func testPubkey(t *testing.T) *btcec.PublicKey {
	t.Helper()

	_, pubkey := btcec.PrivKeyFromBytes(testKeyBytes)
	return pubkey
}

func testMultisigScript(t *testing.T, pubkey *btcec.PublicKey) []byte {
	t.Helper()

	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(pubkey.SerializeCompressed()).
		AddOp(txscript.OP_1).
		AddOp(txscript.OP_CHECKMULTISIG).
		Script()
	require.NoError(t, err)

	return script
}

// TestForPubkeyRendering checks that each strategy renders the standard
// script shape it names when locking to a key.
func TestForPubkeyRendering(t *testing.T) {
	pubkey := testPubkey(t)

	tests := []struct {
		strategy    Strategy
		scriptClass txscript.ScriptClass
	}{
		{StrategyExposed, txscript.PubKeyTy},
		{StrategyLegacyHashed, txscript.PubKeyHashTy},
		{StrategyWitnessV0, txscript.WitnessV0PubKeyHashTy},
		{StrategyWitnessScriptHash, txscript.ScriptHashTy},
	}

	for _, test := range tests {
		t.Run(test.strategy.String(), func(t *testing.T) {
			script, err := ForPubkey(test.strategy, pubkey)
			require.NoError(t, err)
			require.Equal(t, test.scriptClass,
				txscript.GetScriptClass(script))
		})
	}
}

// TestForScriptRendering checks that each strategy renders the standard
// script shape it names when locking to a script, and that the exposed form
// does not alias the input.
func TestForScriptRendering(t *testing.T) {
	lockScript := testMultisigScript(t, testPubkey(t))

	tests := []struct {
		strategy    Strategy
		scriptClass txscript.ScriptClass
	}{
		{StrategyExposed, txscript.MultiSigTy},
		{StrategyLegacyHashed, txscript.ScriptHashTy},
		{StrategyWitnessV0, txscript.WitnessV0ScriptHashTy},
		{StrategyWitnessScriptHash, txscript.ScriptHashTy},
	}

	for _, test := range tests {
		t.Run(test.strategy.String(), func(t *testing.T) {
			script, err := ForScript(test.strategy, lockScript)
			require.NoError(t, err)
			require.Equal(t, test.scriptClass,
				txscript.GetScriptClass(script))
		})
	}

	exposed, err := ForScript(StrategyExposed, lockScript)
	require.NoError(t, err)
	require.Equal(t, lockScript, exposed)
	exposed[0] = txscript.OP_2
	require.NotEqual(t, lockScript[0], exposed[0])
}

// TestNestedWitnessDiffers checks that the two P2SH-producing strategies
// hash different preimages, so legacy and nested witness forms can never
// collide for the same lock script.
func TestNestedWitnessDiffers(t *testing.T) {
	lockScript := testMultisigScript(t, testPubkey(t))

	legacy, err := ForScript(StrategyLegacyHashed, lockScript)
	require.NoError(t, err)

	nested, err := ForScript(StrategyWitnessScriptHash, lockScript)
	require.NoError(t, err)

	require.NotEqual(t, legacy, nested)
}

// TestClassify checks the descriptor assigned to each standard scriptPubkey
// shape, plus the plain fallback retaining the raw script.
func TestClassify(t *testing.T) {
	pubkey := testPubkey(t)
	lockScript := testMultisigScript(t, pubkey)

	p2pk, err := ForPubkey(StrategyExposed, pubkey)
	require.NoError(t, err)
	p2pkh, err := ForPubkey(StrategyLegacyHashed, pubkey)
	require.NoError(t, err)
	p2wpkh, err := ForPubkey(StrategyWitnessV0, pubkey)
	require.NoError(t, err)
	p2sh, err := ForScript(StrategyLegacyHashed, lockScript)
	require.NoError(t, err)
	p2wsh, err := ForScript(StrategyWitnessV0, lockScript)
	require.NoError(t, err)

	nullData, err := NullData([]byte("payload"))
	require.NoError(t, err)

	taproot, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(chainhash.HashB([]byte("output key"))).
		Script()
	require.NoError(t, err)

	tests := []struct {
		name       string
		script     []byte
		descriptor DescriptorType
	}{
		{"p2pk", p2pk, DescriptorPubkey},
		{"p2pkh", p2pkh, DescriptorPubkeyHash},
		{"p2sh", p2sh, DescriptorScriptHash},
		{"p2wpkh", p2wpkh, DescriptorWitnessPubkeyHash},
		{"p2wsh", p2wsh, DescriptorWitnessScriptHash},
		{"taproot", taproot, DescriptorTaproot},
		{"nulldata", nullData, DescriptorNullData},
		{"plain", lockScript, DescriptorPlain},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			descriptor := Classify(test.script)
			require.Equal(t, test.descriptor, descriptor.Type)

			if test.descriptor == DescriptorPlain {
				require.Equal(t, test.script,
					descriptor.Script)
			} else {
				require.Nil(t, descriptor.Script)
			}
		})
	}
}
