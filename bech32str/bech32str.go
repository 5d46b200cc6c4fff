// Package bech32str renders commitment ids and raw payloads as
// human-readable bech32 strings for display and transport. The encoding is
// never part of the commitment algorithm itself.
//
// Three string families are produced: "id1..." for 32-byte ids, "data1..."
// for raw payloads, and "z1..." for DEFLATE-compressed payloads prefixed
// with a single version byte identifying the compression algorithm.
package bech32str

import (
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// HRPID is the human-readable prefix of id strings.
	HRPID = "id"

	// HRPData is the human-readable prefix of raw payload strings.
	HRPData = "data"

	// HRPZip is the human-readable prefix of compressed payload strings.
	HRPZip = "z"
)

// rawDataEncodingDeflate is the version byte tagging DEFLATE-compressed
// payloads inside z1... strings.
const rawDataEncodingDeflate byte = 1

var (
	// ErrWrongPrefix is returned when the decoded human-readable part
	// does not match the requested string family.
	ErrWrongPrefix = errors.New("object type does not match bech32 prefix")

	// ErrWrongIDLen is returned when an id payload is not 32 bytes.
	ErrWrongIDLen = errors.New("id payload must be 32 bytes")
)

// unknownRawDataEncodingError is returned when a compressed payload carries
// a version byte this package does not know.
type unknownRawDataEncodingError byte

func (e unknownRawDataEncodingError) Error() string {
	return fmt.Sprintf("unknown raw data encoding version %d", byte(e))
}

// EncodeID renders a 32-byte hash as an id1... string.
func EncodeID(id chainhash.Hash) (string, error) {
	return encode(HRPID, id[:])
}

// DecodeID parses an id1... string back into its 32-byte hash.
func DecodeID(s string) (chainhash.Hash, error) {
	payload, err := decode(HRPID, s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	if len(payload) != chainhash.HashSize {
		return chainhash.Hash{}, ErrWrongIDLen
	}

	var id chainhash.Hash
	copy(id[:], payload)
	return id, nil
}

// EncodeData renders a raw payload as a data1... string.
func EncodeData(payload []byte) (string, error) {
	return encode(HRPData, payload)
}

// DecodeData parses a data1... string back into its raw payload.
func DecodeData(s string) ([]byte, error) {
	return decode(HRPData, s)
}

// EncodeZip DEFLATE-compresses a payload and renders it as a z1... string.
// The compressed stream is prefixed with a version byte identifying the
// algorithm so future encodings can coexist.
func EncodeZip(payload []byte) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte(rawDataEncodingDeflate)

	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(payload); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return encode(HRPZip, buf.Bytes())
}

// DecodeZip parses a z1... string, checks the compression version byte and
// inflates the payload.
func DecodeZip(s string) ([]byte, error) {
	data, err := decode(HRPZip, s)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, unknownRawDataEncodingError(0)
	}
	if data[0] != rawDataEncodingDeflate {
		return nil, unknownRawDataEncodingError(data[0])
	}

	r := flate.NewReader(bytes.NewReader(data[1:]))
	defer r.Close()

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflating payload: %w", err)
	}
	return payload, nil
}

func encode(hrp string, payload []byte) (string, error) {
	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, converted)
}

func decode(hrp, s string) ([]byte, error) {
	prefix, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return nil, err
	}
	if prefix != hrp {
		return nil, ErrWrongPrefix
	}
	return bech32.ConvertBits(data, 5, 8, false)
}
