package dbc

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/crisdut/bp-core/pubkeyscript"
)

// ScriptPubkeyComposition is the closed set of scriptPubkey shapes a
// commitment can be rendered into. The composition decides both which nested
// container hosts the commitment and how its output wraps into the final
// script.
type ScriptPubkeyComposition uint8

const (
	// ComposePublicKey exposes the tweaked key directly (pay-to-pubkey).
	ComposePublicKey ScriptPubkeyComposition = iota

	// ComposePubkeyHash renders the legacy hash of the tweaked key
	// (pay-to-pubkey-hash).
	ComposePubkeyHash

	// ComposeScriptHash renders the legacy hash of the committed lock
	// script (pay-to-script-hash).
	ComposeScriptHash

	// ComposeWPubkeyHash renders the segwit v0 hash of the tweaked key
	// (pay-to-witness-pubkey-hash).
	ComposeWPubkeyHash

	// ComposeWScriptHash renders the segwit v0 hash of the committed lock
	// script (pay-to-witness-script-hash).
	ComposeWScriptHash

	// ComposeSHWPubkeyHash renders the P2SH-nested segwit form of the
	// tweaked key.
	ComposeSHWPubkeyHash

	// ComposeSHWScriptHash renders the P2SH-nested segwit form of the
	// committed lock script.
	ComposeSHWScriptHash

	// ComposeTapRoot renders a taproot output. Assembly of the final
	// script is not defined yet and fails with ErrTaprootUnsupported
	// after the tweak has been computed.
	ComposeTapRoot

	// ComposeOpReturn renders a null-data push of the tweaked key's
	// serialized bytes.
	ComposeOpReturn

	// ComposePlainScript exposes the committed lock script directly.
	ComposePlainScript
)

var compositionNames = map[ScriptPubkeyComposition]string{
	ComposePublicKey:     "pubkey",
	ComposePubkeyHash:    "pubkey-hash",
	ComposeScriptHash:    "script-hash",
	ComposeWPubkeyHash:   "witness-pubkey-hash",
	ComposeWScriptHash:   "witness-script-hash",
	ComposeSHWPubkeyHash: "sh-witness-pubkey-hash",
	ComposeSHWScriptHash: "sh-witness-script-hash",
	ComposeTapRoot:       "taproot",
	ComposeOpReturn:      "op-return",
	ComposePlainScript:   "plain-script",
}

func (c ScriptPubkeyComposition) String() string {
	if name, ok := compositionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown composition (%d)", uint8(c))
}

// ParseComposition maps a composition name back to its value.
func ParseComposition(name string) (ScriptPubkeyComposition, error) {
	for composition, known := range compositionNames {
		if known == name {
			return composition, nil
		}
	}
	return 0, fmt.Errorf("unknown composition %q", name)
}

// ScriptPubkeyContainer is the working state of one scriptPubkey commitment:
// the untweaked key, the script info locating it, the composition to render,
// and the protocol tag. The tweaking factor slot starts empty and is written
// exactly once by the nested container invoked during EmbedCommit.
type ScriptPubkeyContainer struct {
	Pubkey      *btcec.PublicKey
	ScriptInfo  ScriptInfo
	Composition ScriptPubkeyComposition

	// Tag is the single SHA256 hash identifying the commitment protocol.
	Tag chainhash.Hash

	// TweakingFactor is copied back from the nested container after a
	// successful EmbedCommit; it is the audit trail of the applied tweak.
	TweakingFactor *TweakingFactor
}

// ScriptPubkeyCommitment is the final scriptPubkey carrying an embedded
// message commitment: the only externally meaningful product of the
// construction path.
type ScriptPubkeyCommitment struct {
	script []byte
}

// NewScriptPubkeyCommitment wraps an observed scriptPubkey for verification
// against a reconstructed container.
func NewScriptPubkeyCommitment(script []byte) *ScriptPubkeyCommitment {
	wrapped := make([]byte, len(script))
	copy(wrapped, script)
	return &ScriptPubkeyCommitment{script: wrapped}
}

// Script returns a copy of the committed scriptPubkey bytes.
func (c *ScriptPubkeyCommitment) Script() []byte {
	script := make([]byte, len(c.script))
	copy(script, c.script)
	return script
}

// NewScriptPubkeyContainer assembles a fresh container for the construction
// path from the committer-chosen parts.
func NewScriptPubkeyContainer(tag chainhash.Hash, pubkey *btcec.PublicKey,
	scriptInfo ScriptInfo,
	composition ScriptPubkeyComposition) *ScriptPubkeyContainer {

	return &ScriptPubkeyContainer{
		Pubkey:      pubkey,
		ScriptInfo:  scriptInfo,
		Composition: composition,
		Tag:         tag,
	}
}

// ReconstructScriptPubkey rebuilds a container from a proof, the protocol
// tag, and an observed on-chain scriptPubkey. The observed script is
// classified into its standard descriptor, the composition is selected (with
// P2SH disambiguated by re-rendering the proof's candidates), and the
// pairing of composition and script info is validated. Any shape
// disagreement fails with ErrInvalidProofStructure.
//
// The returned container has no tweaking factor yet: recomputing it requires
// the original message via EmbedCommit or Verify.
func ReconstructScriptPubkey(proof Proof, supplement chainhash.Hash,
	host []byte) (*ScriptPubkeyContainer, error) {

	if proof.Pubkey == nil || proof.ScriptInfo == nil {
		return nil, ErrInvalidProofStructure
	}

	scriptInfo := proof.ScriptInfo
	lockScript := proof.LockScript()

	var composition ScriptPubkeyComposition
	descriptor := pubkeyscript.Classify(host)
	switch descriptor.Type {
	case pubkeyscript.DescriptorScriptHash:
		// P2SH wraps either a legacy-hashed lock script, a nested
		// witness-script-hash, or, with no lock script in the proof, a
		// nested witness-pubkey-hash. Re-render each candidate and
		// compare against the observed script; order matters here.
		var err error
		composition, err = disambiguateScriptHash(
			proof.Pubkey, lockScript, host,
		)
		if err != nil {
			return nil, err
		}

	case pubkeyscript.DescriptorPlain:
		// An exposed script is committed to directly; the proof's
		// script info is rewritten to carry it.
		scriptInfo = ScriptInfoLockScript{Script: descriptor.Script}
		composition = ComposePlainScript

	case pubkeyscript.DescriptorPubkey:
		composition = ComposePublicKey
	case pubkeyscript.DescriptorPubkeyHash:
		composition = ComposePubkeyHash
	case pubkeyscript.DescriptorNullData:
		composition = ComposeOpReturn
	case pubkeyscript.DescriptorWitnessPubkeyHash:
		composition = ComposeWPubkeyHash
	case pubkeyscript.DescriptorWitnessScriptHash:
		composition = ComposeWScriptHash
	case pubkeyscript.DescriptorTaproot:
		composition = ComposeTapRoot

	default:
		return nil, ErrInvalidProofStructure
	}

	if err := checkShape(composition, scriptInfo); err != nil {
		return nil, err
	}

	return &ScriptPubkeyContainer{
		Pubkey:      proof.Pubkey,
		ScriptInfo:  scriptInfo,
		Composition: composition,
		Tag:         supplement,
	}, nil
}

// disambiguateScriptHash selects the composition hiding behind an observed
// P2SH scriptPubkey by re-rendering the proof's candidate under each nesting
// strategy and comparing structurally.
func disambiguateScriptHash(pubkey *btcec.PublicKey, lockScript,
	host []byte) (ScriptPubkeyComposition, error) {

	if lockScript != nil {
		legacy, err := pubkeyscript.ForScript(
			pubkeyscript.StrategyLegacyHashed, lockScript,
		)
		if err != nil {
			return 0, fmt.Errorf("rendering lock script: %w", err)
		}
		if bytes.Equal(legacy, host) {
			return ComposeScriptHash, nil
		}

		nested, err := pubkeyscript.ForScript(
			pubkeyscript.StrategyWitnessScriptHash, lockScript,
		)
		if err != nil {
			return 0, fmt.Errorf("rendering lock script: %w", err)
		}
		if bytes.Equal(nested, host) {
			return ComposeSHWScriptHash, nil
		}

		return 0, ErrInvalidProofStructure
	}

	nested, err := pubkeyscript.ForPubkey(
		pubkeyscript.StrategyWitnessScriptHash, pubkey,
	)
	if err != nil {
		return 0, fmt.Errorf("rendering pubkey script: %w", err)
	}
	if bytes.Equal(nested, host) {
		return ComposeSHWPubkeyHash, nil
	}

	return 0, ErrInvalidProofStructure
}

// checkShape validates the composition/script-info pairing invariant: bare
// key compositions require no script info, script compositions require a
// lock script, and taproot requires a script-tree root.
func checkShape(composition ScriptPubkeyComposition,
	scriptInfo ScriptInfo) error {

	switch composition {
	case ComposePublicKey, ComposePubkeyHash, ComposeWPubkeyHash,
		ComposeSHWPubkeyHash, ComposeOpReturn:

		if _, ok := scriptInfo.(ScriptInfoNone); !ok {
			return ErrInvalidProofStructure
		}

	case ComposePlainScript, ComposeScriptHash, ComposeWScriptHash,
		ComposeSHWScriptHash:

		if _, ok := scriptInfo.(ScriptInfoLockScript); !ok {
			return ErrInvalidProofStructure
		}

	case ComposeTapRoot:
		if _, ok := scriptInfo.(ScriptInfoTaproot); !ok {
			return ErrInvalidProofStructure
		}

	default:
		return ErrInvalidProofStructure
	}

	return nil
}

// EmbedCommit embeds msg into the container's primitive and assembles the
// final scriptPubkey per the container's composition. The nested container
// matching the script info performs the actual tweak; its tweaking factor is
// copied back into this container as the audit trail.
//
// A composition incompatible with the script info fails with
// ErrInvalidProofStructure before any state is written. Taproot commitments
// compute and record their tweak but fail with ErrTaprootUnsupported at the
// script-assembly step.
func (c *ScriptPubkeyContainer) EmbedCommit(
	msg []byte) (*ScriptPubkeyCommitment, error) {

	var (
		script []byte
		err    error
	)

	switch info := c.ScriptInfo.(type) {
	case ScriptInfoLockScript:
		script, err = c.embedLockScript(info, msg)

	case ScriptInfoTaproot:
		script, err = c.embedTaproot(info, msg)

	case ScriptInfoNone:
		script, err = c.embedPubkey(msg)

	default:
		err = ErrInvalidProofStructure
	}
	if err != nil {
		return nil, err
	}

	return &ScriptPubkeyCommitment{script: script}, nil
}

func (c *ScriptPubkeyContainer) embedLockScript(info ScriptInfoLockScript,
	msg []byte) ([]byte, error) {

	var strategy pubkeyscript.Strategy
	switch c.Composition {
	case ComposePlainScript:
		strategy = pubkeyscript.StrategyExposed
	case ComposeScriptHash:
		strategy = pubkeyscript.StrategyLegacyHashed
	case ComposeWScriptHash:
		strategy = pubkeyscript.StrategyWitnessV0
	case ComposeSHWScriptHash:
		strategy = pubkeyscript.StrategyWitnessScriptHash
	default:
		return nil, ErrInvalidProofStructure
	}

	nested := &LockscriptContainer{
		Script: info.Script,
		Pubkey: c.Pubkey,
		Tag:    c.Tag,
	}
	commitment, err := nested.EmbedCommit(msg)
	if err != nil {
		return nil, err
	}
	c.TweakingFactor = nested.TweakingFactor

	return pubkeyscript.ForScript(strategy, commitment.Script)
}

func (c *ScriptPubkeyContainer) embedTaproot(info ScriptInfoTaproot,
	msg []byte) ([]byte, error) {

	if c.Composition != ComposeTapRoot {
		return nil, ErrInvalidProofStructure
	}

	nested := &TaprootContainer{
		ScriptRoot:      info.Root,
		IntermediateKey: c.Pubkey,
		Tag:             c.Tag,
	}
	if _, err := nested.EmbedCommit(msg); err != nil {
		return nil, err
	}
	c.TweakingFactor = nested.TweakingFactor

	// The tweak above is final; the rule combining the tweaked internal
	// key and the script root into an output script is not, so this is a
	// hard failure rather than a silent no-op.
	return nil, ErrTaprootUnsupported
}

func (c *ScriptPubkeyContainer) embedPubkey(msg []byte) ([]byte, error) {
	nested := &PubkeyContainer{
		Pubkey: c.Pubkey,
		Tag:    c.Tag,
	}
	commitment, err := nested.EmbedCommit(msg)
	if err != nil {
		return nil, err
	}

	var (
		script []byte
	)
	switch c.Composition {
	case ComposePublicKey:
		script, err = pubkeyscript.ForPubkey(
			pubkeyscript.StrategyExposed, commitment.Pubkey,
		)
	case ComposePubkeyHash:
		script, err = pubkeyscript.ForPubkey(
			pubkeyscript.StrategyLegacyHashed, commitment.Pubkey,
		)
	case ComposeWPubkeyHash:
		script, err = pubkeyscript.ForPubkey(
			pubkeyscript.StrategyWitnessV0, commitment.Pubkey,
		)
	case ComposeSHWPubkeyHash:
		script, err = pubkeyscript.ForPubkey(
			pubkeyscript.StrategyWitnessScriptHash,
			commitment.Pubkey,
		)
	case ComposeOpReturn:
		script, err = pubkeyscript.NullData(
			commitment.Pubkey.SerializeCompressed(),
		)
	default:
		return nil, ErrInvalidProofStructure
	}
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = nested.TweakingFactor
	return script, nil
}

// Verify recomputes the commitment over msg on a fresh copy of the container
// and compares it byte-for-byte with the observed scriptPubkey. On success
// the recomputed tweaking factor is recorded in the container.
func (c *ScriptPubkeyContainer) Verify(commitment *ScriptPubkeyCommitment,
	msg []byte) error {

	recomputed, err := c.EmbedCommit(msg)
	if err != nil {
		return err
	}
	if !bytes.Equal(recomputed.script, commitment.script) {
		return ErrCommitmentMismatch
	}
	return nil
}

// VerifyScript is a convenience wrapper around ReconstructScriptPubkey and
// Verify for callers holding only the raw observed scriptPubkey. It returns
// the reconstructed container with its recomputed tweaking factor on
// success.
func VerifyScript(proof Proof, supplement chainhash.Hash, host []byte,
	msg []byte) (*ScriptPubkeyContainer, error) {

	container, err := ReconstructScriptPubkey(proof, supplement, host)
	if err != nil {
		return nil, err
	}
	err = container.Verify(&ScriptPubkeyCommitment{script: host}, msg)
	if err != nil {
		return nil, err
	}
	return container, nil
}

// Proof projects the container back to its durable proof.
func (c *ScriptPubkeyContainer) Proof() Proof {
	return Proof{
		Pubkey:     c.Pubkey,
		ScriptInfo: c.ScriptInfo,
	}
}

// Deconstruct strips the container back to its shareable artifacts. The
// composition and any recorded tweaking factor are discarded.
func (c *ScriptPubkeyContainer) Deconstruct() (Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

var _ Container = (*ScriptPubkeyContainer)(nil)
