// Package proofdb defines the namespaced transactional key/value interface
// commitment proofs are persisted behind, along with a driver registry so
// backends can register themselves at import time.
package proofdb

// Driver describes a backend capable of creating and opening databases.
type Driver struct {
	DBType string
	Create func(args ...interface{}) (DB, error)
	Open   func(args ...interface{}) (DB, error)
}

// DB is an open proof database. All access happens through transactions.
type DB interface {
	BeginReadTx() (ReadTx, error)
	BeginReadWriteTx() (ReadWriteTx, error)
	Close() error
}

// ReadTx is a read-only transaction. It must be rolled back when finished.
type ReadTx interface {
	ReadBucket(key []byte) ReadBucket
	Rollback() error
}

// ReadWriteTx is a transaction that can mutate the database.
type ReadWriteTx interface {
	ReadTx

	ReadWriteBucket(key []byte) ReadWriteBucket
	CreateTopLevelBucket(key []byte) (ReadWriteBucket, error)
	DeleteTopLevelBucket(key []byte) error
	Commit() error
}

// ReadBucket is a read-only view of one namespace.
type ReadBucket interface {
	NestedReadBucket(key []byte) ReadBucket
	Get(key []byte) []byte
	ForEach(func(k, v []byte) error) error
}

// ReadWriteBucket is a mutable view of one namespace.
type ReadWriteBucket interface {
	ReadBucket

	NestedReadWriteBucket(key []byte) ReadWriteBucket
	CreateBucketIfNotExists(key []byte) (ReadWriteBucket, error)
	DeleteNestedBucket(key []byte) error
	Put(key, value []byte) error
	Delete(key []byte) error
}

var drivers = make(map[string]*Driver)

// RegisterDriver makes a backend available under its database type name.
// Drivers typically register from an init function.
func RegisterDriver(driver Driver) error {
	if _, exists := drivers[driver.DBType]; exists {
		return ErrDbTypeRegistered
	}

	drivers[driver.DBType] = &driver
	return nil
}

// Create makes a new database of the given registered type.
func Create(dbType string, args ...interface{}) (DB, error) {
	drv, exists := drivers[dbType]
	if !exists {
		return nil, ErrDbUnknownType
	}

	return drv.Create(args...)
}

// Open opens an existing database of the given registered type.
func Open(dbType string, args ...interface{}) (DB, error) {
	drv, exists := drivers[dbType]
	if !exists {
		return nil, ErrDbUnknownType
	}

	return drv.Open(args...)
}

// View runs f within a read-only transaction, rolling back afterwards.
func View(db DB, f func(tx ReadTx) error) error {
	tx, err := db.BeginReadTx()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	return f(tx)
}

// Update runs f within a read/write transaction, committing on success and
// rolling back when f fails.
func Update(db DB, f func(tx ReadWriteTx) error) error {
	tx, err := db.BeginReadWriteTx()
	if err != nil {
		return err
	}

	if err := f(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
