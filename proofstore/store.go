// Package proofstore persists commitment proofs. A proof is the durable,
// shareable artifact of a commitment; the store keys each serialized proof
// by its protocol tag and the commitment id of the scriptPubkey it was
// embedded into, so a verifier holding an observed output can look the
// matching proof back up. Records can optionally be encrypted at rest and
// recently fetched proofs are held in an LRU cache.
package proofstore

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightninglabs/neutrino/cache"
	"github.com/lightninglabs/neutrino/cache/lru"

	"github.com/crisdut/bp-core/dbc"
	"github.com/crisdut/bp-core/proofdb"
	"github.com/crisdut/bp-core/snacl"
)

var (
	// ErrProofNotFound is returned when no proof is stored under the
	// requested tag and commitment id.
	ErrProofNotFound = errors.New("proof not found")
)

var (
	// proofsBucketName is the top level bucket; one nested bucket per
	// protocol tag lives below it.
	proofsBucketName = []byte("proofs")
)

// defaultCacheSize bounds the number of decoded proofs kept in memory.
const defaultCacheSize = 100

// CommitmentID identifies a stored proof: the single SHA256 hash of the
// committed scriptPubkey.
type CommitmentID = chainhash.Hash

// ScriptCommitmentID derives the commitment id of an observed scriptPubkey.
func ScriptCommitmentID(script []byte) CommitmentID {
	return chainhash.HashH(script)
}

type cachedProof struct {
	proof dbc.Proof
}

func (c *cachedProof) Size() (uint64, error) {
	return 1, nil
}

// Store provides access to persisted proofs.
type Store struct {
	db proofdb.DB

	// secretKey encrypts records at rest when non-nil.
	secretKey *snacl.SecretKey

	// cache is internally synchronized.
	cache *lru.Cache[cacheKey, *cachedProof]
}

type cacheKey struct {
	tag chainhash.Hash
	id  CommitmentID
}

// Option configures a Store.
type Option func(*Store)

// WithEncryption encrypts proof records at rest with the given secret key.
func WithEncryption(key *snacl.SecretKey) Option {
	return func(s *Store) {
		s.secretKey = key
	}
}

// NewStore creates a proof store on top of an open database, creating the
// top level bucket when missing.
func NewStore(db proofdb.DB, opts ...Option) (*Store, error) {
	s := &Store{
		db:    db,
		cache: lru.NewCache[cacheKey, *cachedProof](defaultCacheSize),
	}
	for _, opt := range opts {
		opt(s)
	}

	err := proofdb.Update(db, func(tx proofdb.ReadWriteTx) error {
		_, err := tx.CreateTopLevelBucket(proofsBucketName)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Store persists a proof under its protocol tag, keyed by the commitment id
// of the scriptPubkey the commitment was embedded into, and returns that id.
func (s *Store) Store(tag chainhash.Hash, script []byte,
	proof dbc.Proof) (CommitmentID, error) {

	id := ScriptCommitmentID(script)

	record, err := serializeProof(proof)
	if err != nil {
		return CommitmentID{}, err
	}
	if s.secretKey != nil {
		record, err = s.secretKey.Encrypt(record)
		if err != nil {
			return CommitmentID{}, err
		}
	}

	err = proofdb.Update(s.db, func(tx proofdb.ReadWriteTx) error {
		proofs := tx.ReadWriteBucket(proofsBucketName)
		if proofs == nil {
			return proofdb.ErrBucketNotFound
		}

		tagBucket, err := proofs.CreateBucketIfNotExists(tag[:])
		if err != nil {
			return err
		}
		return tagBucket.Put(id[:], record)
	})
	if err != nil {
		return CommitmentID{}, err
	}

	_, _ = s.cache.Put(cacheKey{tag: tag, id: id}, &cachedProof{
		proof: proof,
	})

	return id, nil
}

// Fetch loads the proof stored under the given tag and commitment id,
// consulting the cache first.
func (s *Store) Fetch(tag chainhash.Hash, id CommitmentID) (dbc.Proof,
	error) {

	key := cacheKey{tag: tag, id: id}

	cached, err := s.cache.Get(key)
	if err == nil {
		return cached.proof, nil
	}
	if !errors.Is(err, cache.ErrElementNotFound) {
		return dbc.Proof{}, err
	}

	var record []byte
	err = proofdb.View(s.db, func(tx proofdb.ReadTx) error {
		tagBucket := s.tagBucket(tx, tag)
		if tagBucket == nil {
			return ErrProofNotFound
		}

		stored := tagBucket.Get(id[:])
		if stored == nil {
			return ErrProofNotFound
		}

		record = make([]byte, len(stored))
		copy(record, stored)
		return nil
	})
	if err != nil {
		return dbc.Proof{}, err
	}

	proof, err := s.decodeRecord(record)
	if err != nil {
		return dbc.Proof{}, err
	}

	_, _ = s.cache.Put(key, &cachedProof{proof: proof})

	return proof, nil
}

// Delete removes the proof stored under the given tag and commitment id.
// Deleting a missing proof is not an error.
func (s *Store) Delete(tag chainhash.Hash, id CommitmentID) error {
	err := proofdb.Update(s.db, func(tx proofdb.ReadWriteTx) error {
		proofs := tx.ReadWriteBucket(proofsBucketName)
		if proofs == nil {
			return proofdb.ErrBucketNotFound
		}

		tagBucket := proofs.NestedReadWriteBucket(tag[:])
		if tagBucket == nil {
			return nil
		}
		return tagBucket.Delete(id[:])
	})
	if err != nil {
		return err
	}

	s.cache.Delete(cacheKey{tag: tag, id: id})

	return nil
}

// ForEach invokes f for every proof stored under the given tag.
func (s *Store) ForEach(tag chainhash.Hash,
	f func(id CommitmentID, proof dbc.Proof) error) error {

	return proofdb.View(s.db, func(tx proofdb.ReadTx) error {
		tagBucket := s.tagBucket(tx, tag)
		if tagBucket == nil {
			return nil
		}

		return tagBucket.ForEach(func(k, v []byte) error {
			if v == nil {
				return nil
			}

			var id CommitmentID
			if len(k) != chainhash.HashSize {
				return fmt.Errorf("malformed commitment id "+
					"key of length %d", len(k))
			}
			copy(id[:], k)

			proof, err := s.decodeRecord(v)
			if err != nil {
				return err
			}
			return f(id, proof)
		})
	})
}

func (s *Store) tagBucket(tx proofdb.ReadTx,
	tag chainhash.Hash) proofdb.ReadBucket {

	proofs := tx.ReadBucket(proofsBucketName)
	if proofs == nil {
		return nil
	}
	return proofs.NestedReadBucket(tag[:])
}

func (s *Store) decodeRecord(record []byte) (dbc.Proof, error) {
	if s.secretKey != nil {
		decrypted, err := s.secretKey.Decrypt(record)
		if err != nil {
			return dbc.Proof{}, err
		}
		record = decrypted
	}
	return deserializeProof(record)
}
