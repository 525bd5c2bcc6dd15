package ecs

// Table owns values keyed by generational handles and iterates them in
// insertion order. Removal during iteration is deferred through the destroy
// queue so callbacks may destroy entities without disturbing the walk.
type Table[T any] struct {
	pool  *EntityPool
	rows  map[EntityID]*T
	order []EntityID

	destroyQueue []EntityID
	onDestroy    func(EntityID, *T)
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{
		pool:         NewEntityPool(),
		rows:         make(map[EntityID]*T, 64),
		order:        make([]EntityID, 0, 64),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

// OnDestroy installs a hook invoked for every row removed from the table,
// before its handle is invalidated.
func (t *Table[T]) OnDestroy(fn func(EntityID, *T)) { t.onDestroy = fn }

func (t *Table[T]) Insert(v *T) EntityID {
	id := t.pool.Create()
	t.rows[id] = v
	t.order = append(t.order, id)
	return id
}

func (t *Table[T]) Get(id EntityID) (*T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *Table[T]) Has(id EntityID) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *Table[T]) Len() int { return len(t.rows) }

// Remove deletes id immediately. Returns false for stale handles.
func (t *Table[T]) Remove(id EntityID) bool {
	v, ok := t.rows[id]
	if !ok {
		return false
	}
	if t.onDestroy != nil {
		t.onDestroy(id, v)
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.pool.Destroy(id)
	return true
}

// Each visits rows in insertion order. Rows inserted during the walk are not
// visited; rows removed during the walk are skipped.
func (t *Table[T]) Each(fn func(EntityID, *T)) {
	ids := make([]EntityID, len(t.order))
	copy(ids, t.order)
	for _, id := range ids {
		if v, ok := t.rows[id]; ok {
			fn(id, v)
		}
	}
}

// IDs returns a snapshot of the live handles in insertion order.
func (t *Table[T]) IDs() []EntityID {
	ids := make([]EntityID, len(t.order))
	copy(ids, t.order)
	return ids
}

// MarkForDestruction queues id for removal at the next FlushDestroyQueue.
func (t *Table[T]) MarkForDestruction(id EntityID) {
	for _, q := range t.destroyQueue {
		if q == id {
			return
		}
	}
	t.destroyQueue = append(t.destroyQueue, id)
}

func (t *Table[T]) Pending() int { return len(t.destroyQueue) }

// FlushDestroyQueue removes every queued row and returns how many were live.
func (t *Table[T]) FlushDestroyQueue() int {
	n := 0
	for _, id := range t.destroyQueue {
		if t.Remove(id) {
			n++
		}
	}
	t.destroyQueue = t.destroyQueue[:0]
	return n
}

// Clear removes every row in reverse insertion order.
func (t *Table[T]) Clear() {
	for i := len(t.order) - 1; i >= 0; i-- {
		t.Remove(t.order[i])
	}
	t.destroyQueue = t.destroyQueue[:0]
}
