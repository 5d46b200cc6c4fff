package proofdb

import (
	"errors"
)

var (
	ErrDbTypeRegistered = errors.New("database type already registered")

	ErrDbUnknownType = errors.New("unknown database type")

	ErrDbDoesNotExist = errors.New("database does not exist")

	ErrDbNotOpen = errors.New("database not open")

	ErrInvalid = errors.New("invalid database")
)

var (
	// ErrTxClosed is returned when attempting to commit or rollback a
	// transaction that has already had one of those operations performed.
	ErrTxClosed = errors.New("tx closed")

	// ErrTxNotWritable is returned when an operation that requires write
	// access to the database is attempted against a read-only
	// transaction.
	ErrTxNotWritable = errors.New("tx not writable")
)

var (
	// ErrBucketNotFound is returned when trying to access a bucket that
	// has not been created yet.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrBucketExists is returned when creating a bucket that already
	// exists.
	ErrBucketExists = errors.New("bucket already exists")

	// ErrBucketNameRequired is returned when creating a bucket with a
	// blank name.
	ErrBucketNameRequired = errors.New("bucket name required")

	// ErrKeyRequired is returned when inserting a zero-length key.
	ErrKeyRequired = errors.New("key required")

	// ErrIncompatibleValue is returned when writing over a nested bucket
	// or creating a bucket over an existing value.
	ErrIncompatibleValue = errors.New("incompatible value")
)
