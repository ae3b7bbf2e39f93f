package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type EntityFactory[T Entity] func() T

// Repository reads and writes entities of one kind inside caller-owned
// badger transactions.
type Repository[T Entity] struct {
	factory EntityFactory[T]
	ttl     time.Duration
}

// NewRepository creates a repository. A positive ttl makes every write
// expire after that duration, indexes included.
func NewRepository[T Entity](factory EntityFactory[T], ttl time.Duration) *Repository[T] {
	return &Repository[T]{
		factory: factory,
		ttl:     ttl,
	}
}

func (r *Repository[T]) Read(txn *badger.Txn, key string) (T, error) {
	entity := r.factory()

	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return entity, ErrNotFound
	}
	if err != nil {
		return entity, fmt.Errorf("failed to get entity: %w", err)
	}

	if valErr := item.Value(entity.UnmarshalStorage); valErr != nil {
		return entity, fmt.Errorf("failed to unmarshal entity: %w", valErr)
	}

	return entity, nil
}

// List returns every entity whose primary key starts with prefix, in key order.
func (r *Repository[T]) List(txn *badger.Txn, prefix string) ([]T, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 10

	it := txn.NewIterator(opts)
	defer it.Close()

	var entities []T
	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		entity := r.factory()
		if err := it.Item().Value(entity.UnmarshalStorage); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

// ListByIndex resolves every index entry under prefix to its entity, in index
// key order.
func (r *Repository[T]) ListByIndex(txn *badger.Txn, prefix string) ([]T, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var entities []T
	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		key, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get entity key: %w", err)
		}

		entity, err := r.Read(txn, string(key))
		if err != nil {
			return nil, err
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

func (r *Repository[T]) Write(txn *badger.Txn, entity T) error {
	data, err := entity.MarshalStorage()
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	if indexErr := r.CreateIndexes(txn, entity); indexErr != nil {
		return indexErr
	}

	if setErr := txn.SetEntry(r.entry([]byte(entity.StorageKey()), data)); setErr != nil {
		return fmt.Errorf("failed to store entity: %w", setErr)
	}

	return nil
}

func (r *Repository[T]) CreateIndexes(txn *badger.Txn, entity T) error {
	key := []byte(entity.StorageKey())
	for _, index := range entity.StorageIndexes() {
		if err := txn.SetEntry(r.entry([]byte(index), key)); err != nil {
			return fmt.Errorf("failed to set entity index: %w", err)
		}
	}

	return nil
}

func (r *Repository[T]) entry(key, value []byte) *badger.Entry {
	e := badger.NewEntry(key, value)
	if r.ttl > 0 {
		e = e.WithTTL(r.ttl)
	}

	return e
}
