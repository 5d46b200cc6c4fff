package bdb

import (
	"go.etcd.io/bbolt"

	"github.com/crisdut/bp-core/proofdb"
)

type bucket bbolt.Bucket

func (b *bucket) NestedReadBucket(key []byte) proofdb.ReadBucket {
	return b.NestedReadWriteBucket(key)
}

func (b *bucket) NestedReadWriteBucket(key []byte) proofdb.ReadWriteBucket {
	boltBucket := (*bbolt.Bucket)(b).Bucket(key)
	if boltBucket == nil {
		return nil
	}
	return (*bucket)(boltBucket)
}

func (b *bucket) CreateBucketIfNotExists(
	key []byte) (proofdb.ReadWriteBucket, error) {

	boltBucket, err := (*bbolt.Bucket)(b).CreateBucketIfNotExists(key)
	if err != nil {
		return nil, convertErr(err)
	}
	return (*bucket)(boltBucket), nil
}

func (b *bucket) DeleteNestedBucket(key []byte) error {
	return convertErr((*bbolt.Bucket)(b).DeleteBucket(key))
}

func (b *bucket) Get(key []byte) []byte {
	return (*bbolt.Bucket)(b).Get(key)
}

func (b *bucket) ForEach(f func(k, v []byte) error) error {
	return convertErr((*bbolt.Bucket)(b).ForEach(f))
}

func (b *bucket) Put(key, value []byte) error {
	return convertErr((*bbolt.Bucket)(b).Put(key, value))
}

func (b *bucket) Delete(key []byte) error {
	return convertErr((*bbolt.Bucket)(b).Delete(key))
}

var _ proofdb.ReadWriteBucket = (*bucket)(nil)
