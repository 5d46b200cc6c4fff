package bdb

import (
	"os"
	"time"

	"go.etcd.io/bbolt"

	"github.com/crisdut/bp-core/proofdb"
)

type db bbolt.DB

func (db *db) beginTx(writable bool) (*transaction, error) {
	boltTx, err := (*bbolt.DB)(db).Begin(writable)
	if err != nil {
		return nil, convertErr(err)
	}
	return &transaction{boltTx: boltTx}, nil
}

func (db *db) BeginReadTx() (proofdb.ReadTx, error) {
	return db.beginTx(false)
}

func (db *db) BeginReadWriteTx() (proofdb.ReadWriteTx, error) {
	return db.beginTx(true)
}

func (db *db) Close() error {
	return convertErr((*bbolt.DB)(db).Close())
}

var _ proofdb.DB = (*db)(nil)

func openDB(dbPath string, create bool,
	timeout time.Duration) (proofdb.DB, error) {

	if !create && !fileExists(dbPath) {
		return nil, proofdb.ErrDbDoesNotExist
	}

	options := &bbolt.Options{
		FreelistType: bbolt.FreelistMapType,
		Timeout:      timeout,
	}

	boltDB, err := bbolt.Open(dbPath, 0600, options)
	return (*db)(boltDB), convertErr(err)
}

func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

func convertErr(err error) error {
	switch err {
	// Database open/create errors.
	case bbolt.ErrDatabaseNotOpen:
		return proofdb.ErrDbNotOpen
	case bbolt.ErrInvalid:
		return proofdb.ErrInvalid

	// Transaction errors.
	case bbolt.ErrTxNotWritable:
		return proofdb.ErrTxNotWritable
	case bbolt.ErrTxClosed:
		return proofdb.ErrTxClosed

	// Value/bucket errors.
	case bbolt.ErrBucketNotFound:
		return proofdb.ErrBucketNotFound
	case bbolt.ErrBucketExists:
		return proofdb.ErrBucketExists
	case bbolt.ErrBucketNameRequired:
		return proofdb.ErrBucketNameRequired
	case bbolt.ErrKeyRequired:
		return proofdb.ErrKeyRequired
	case bbolt.ErrIncompatibleValue:
		return proofdb.ErrIncompatibleValue
	}

	// Return the original error if none of the above applies.
	return err
}
