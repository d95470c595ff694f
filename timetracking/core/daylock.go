package core

import (
	"context"
	"sync"
	"time"

	"axiapac.com/timetracker/utils"
	"golang.org/x/sync/semaphore"
)

const businessHoursLockKey = "business-hours"

// DayLocks hands out one exclusive slot per key. Entries are dropped once
// no holder or waiter remains.
type DayLocks struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	sem  *semaphore.Weighted
	refs int
}

func NewDayLocks() *DayLocks {
	return &DayLocks{slots: make(map[string]*lockSlot)}
}

func DayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(utils.DateLayout)
}

// Acquire blocks until the key is free or ctx is done.
func (l *DayLocks) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{sem: semaphore.NewWeighted(1)}
		l.slots[key] = slot
	}
	slot.refs++
	l.mu.Unlock()

	if err := slot.sem.Acquire(ctx, 1); err != nil {
		l.drop(key, slot)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			slot.sem.Release(1)
			l.drop(key, slot)
		})
	}, nil
}

func (l *DayLocks) drop(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *DayLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
