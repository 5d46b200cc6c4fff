package bdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crisdut/bp-core/proofdb"
)

const testTimeout = time.Second * 10

func openTestDB(t *testing.T) proofdb.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := proofdb.Create(dbType, dbPath, testTimeout)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

// TestOpenMissingDatabase checks that opening without creating fails with
// the sentinel error.
func TestOpenMissingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")
	_, err := proofdb.Open(dbType, dbPath, testTimeout)
	require.ErrorIs(t, err, proofdb.ErrDbDoesNotExist)
}

// TestInvalidDriverArgs checks driver argument validation.
func TestInvalidDriverArgs(t *testing.T) {
	_, err := proofdb.Create(dbType)
	require.Error(t, err)

	_, err = proofdb.Create(dbType, 42, testTimeout)
	require.Error(t, err)

	_, err = proofdb.Create(dbType, "path", "not a duration")
	require.Error(t, err)
}

// TestBucketOperations walks key/value and nested bucket access through
// committed read/write transactions.
func TestBucketOperations(t *testing.T) {
	db := openTestDB(t)

	bucketKey := []byte("top")
	nestedKey := []byte("nested")

	err := proofdb.Update(db, func(tx proofdb.ReadWriteTx) error {
		top, err := tx.CreateTopLevelBucket(bucketKey)
		require.NoError(t, err)

		require.NoError(t, top.Put([]byte("k1"), []byte("v1")))

		nested, err := top.CreateBucketIfNotExists(nestedKey)
		require.NoError(t, err)
		return nested.Put([]byte("k2"), []byte("v2"))
	})
	require.NoError(t, err)

	err = proofdb.View(db, func(tx proofdb.ReadTx) error {
		top := tx.ReadBucket(bucketKey)
		require.NotNil(t, top)
		require.Equal(t, []byte("v1"), top.Get([]byte("k1")))
		require.Nil(t, top.Get([]byte("absent")))

		nested := top.NestedReadBucket(nestedKey)
		require.NotNil(t, nested)
		require.Equal(t, []byte("v2"), nested.Get([]byte("k2")))

		require.Nil(t, top.NestedReadBucket([]byte("absent")))
		return nil
	})
	require.NoError(t, err)
}

// TestUpdateRollback checks that a failing update leaves no trace.
func TestUpdateRollback(t *testing.T) {
	db := openTestDB(t)

	bucketKey := []byte("top")
	err := proofdb.Update(db, func(tx proofdb.ReadWriteTx) error {
		_, err := tx.CreateTopLevelBucket(bucketKey)
		return err
	})
	require.NoError(t, err)

	failure := proofdb.ErrBucketNotFound
	err = proofdb.Update(db, func(tx proofdb.ReadWriteTx) error {
		bucket := tx.ReadWriteBucket(bucketKey)
		require.NotNil(t, bucket)
		require.NoError(t, bucket.Put([]byte("k"), []byte("v")))
		return failure
	})
	require.ErrorIs(t, err, failure)

	err = proofdb.View(db, func(tx proofdb.ReadTx) error {
		bucket := tx.ReadBucket(bucketKey)
		require.NotNil(t, bucket)
		require.Nil(t, bucket.Get([]byte("k")))
		return nil
	})
	require.NoError(t, err)
}

// TestDeleteBuckets checks nested and top level bucket removal.
func TestDeleteBuckets(t *testing.T) {
	db := openTestDB(t)

	bucketKey := []byte("top")
	nestedKey := []byte("nested")

	err := proofdb.Update(db, func(tx proofdb.ReadWriteTx) error {
		top, err := tx.CreateTopLevelBucket(bucketKey)
		require.NoError(t, err)
		_, err = top.CreateBucketIfNotExists(nestedKey)
		return err
	})
	require.NoError(t, err)

	err = proofdb.Update(db, func(tx proofdb.ReadWriteTx) error {
		top := tx.ReadWriteBucket(bucketKey)
		require.NotNil(t, top)
		require.NoError(t, top.DeleteNestedBucket(nestedKey))
		require.Nil(t, top.NestedReadWriteBucket(nestedKey))

		return tx.DeleteTopLevelBucket(bucketKey)
	})
	require.NoError(t, err)

	err = proofdb.View(db, func(tx proofdb.ReadTx) error {
		require.Nil(t, tx.ReadBucket(bucketKey))
		return nil
	})
	require.NoError(t, err)
}
