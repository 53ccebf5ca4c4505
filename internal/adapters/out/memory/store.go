// Package memory keeps orders, couriers and shops in process memory. It backs the
// STORAGE=memory mode and the HTTP tests, and follows the same contract as the
// postgres adapter: optimistic order versions, staged writes applied atomically on
// Commit, and domain events published after a successful commit.
package memory

import (
	"sync"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
)

type courierRow struct {
	id       kernel.UUID
	name     string
	vehicle  kernel.DeliveryOption
	location *kernel.Location
}

type shopRow struct {
	id       kernel.UUID
	sellerID kernel.UUID
	name     string
	address  kernel.Address
}

// Store is the shared state behind every memory unit of work. The zero value is
// not usable; call NewStore.
type Store struct {
	mu       sync.RWMutex
	orders   map[kernel.UUID]order.State
	couriers map[kernel.UUID]courierRow
	// courierOrder keeps registration order for GetAll.
	courierOrder []kernel.UUID
	shops        map[kernel.UUID]shopRow
}

func NewStore() *Store {
	return &Store{
		orders:   make(map[kernel.UUID]order.State),
		couriers: make(map[kernel.UUID]courierRow),
		shops:    make(map[kernel.UUID]shopRow),
	}
}

// write is one staged change. check runs under at least a read lock and must not
// mutate; apply runs under the write lock after every check of the batch passed.
type write struct {
	check func(s *Store) error
	apply func(s *Store)
}

func (s *Store) commit(writes []write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		if err := w.check(s); err != nil {
			return err
		}
	}
	for _, w := range writes {
		w.apply(s)
	}
	return nil
}

func (s *Store) precheck(w write) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return w.check(s)
}
