package store

import (
	"container/list"
	"sync"
	"time"
)

// Announced remembers which detections were already reported as new, so a
// name is not announced again while the snapshot it came from is still
// unpublished. Entries expire after ttl; the oldest go first past capacity.
type Announced struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	now   func() time.Time
	ll    *list.List // most recent at front
	items map[string]*list.Element
}

type announcement struct {
	name string
	exp  time.Time
}

func NewAnnounced(capacity int, ttl time.Duration) *Announced {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Announced{cap: capacity, ttl: ttl, now: time.Now, ll: list.New(), items: make(map[string]*list.Element)}
}

// Filter returns the names not announced yet and marks them.
func (a *Announced) Filter(names []string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.now()
	a.expire(now)

	var fresh []string
	for _, n := range names {
		if el, ok := a.items[n]; ok {
			el.Value = announcement{name: n, exp: now.Add(a.ttl)}
			a.ll.MoveToFront(el)
			continue
		}
		a.items[n] = a.ll.PushFront(announcement{name: n, exp: now.Add(a.ttl)})
		fresh = append(fresh, n)
	}
	for a.ll.Len() > a.cap {
		a.drop(a.ll.Back())
	}
	return fresh
}

func (a *Announced) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ll.Len()
}

func (a *Announced) expire(now time.Time) {
	for el := a.ll.Back(); el != nil; el = a.ll.Back() {
		if now.Before(el.Value.(announcement).exp) {
			return
		}
		a.drop(el)
	}
}

func (a *Announced) drop(el *list.Element) {
	a.ll.Remove(el)
	delete(a.items, el.Value.(announcement).name)
}
