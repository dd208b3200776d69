package ledger

import "sync"

// keyedMutex serializes writes per (user, symbol). The sell gate reads the
// committed net quantity and then inserts; without this lock two concurrent
// SELLs could both validate against the same stale snapshot.
type keyedMutex struct {
	mu sync.Map // key -> *sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	v, _ := k.mu.LoadOrStore(key, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
