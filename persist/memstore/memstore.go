// Package memstore implements persist.Store in memory, for tests and
// ephemeral sessions.
package memstore

import (
	"sync"

	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/persist"
)

var _ persist.Store = (*MemStore)(nil)

type MemStore struct {
	lock   sync.RWMutex
	values map[string][]byte
}

func New() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

func (ms *MemStore) Load(key string) ([]byte, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	value, ok := ms.values[key]
	if !ok {
		return nil, internalerrors.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (ms *MemStore) Save(key string, value []byte) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.values[key] = append([]byte(nil), value...)
	return nil
}

func (ms *MemStore) Delete(key string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	if _, ok := ms.values[key]; !ok {
		return internalerrors.ErrNotFound
	}
	delete(ms.values, key)
	return nil
}
