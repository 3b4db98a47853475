package store

import (
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketKV = "kv" // key: store key -> raw value

// Bolt is a Store backed by a bbolt file.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a Bolt store at path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketKV))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(boltBucketKV)).Get([]byte(key))
		if data == nil {
			return nil
		}

		// bbolt memory is only valid inside the transaction
		value = string(data)
		found = true

		return nil
	})

	return value, found, err
}

func (b *Bolt) Set(key, value string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketKV)).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Remove(keys ...string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketKV))

		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return err
			}
		}

		return nil
	})
}
