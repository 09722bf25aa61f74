package usecase

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// alertLocks serializes read-modify-write cycles on one alert within the process.
type alertLocks struct {
	stripes [lockStripes]sync.Mutex
}

func newAlertLocks() *alertLocks {
	return &alertLocks{}
}

func (l *alertLocks) lock(alertID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(alertID))
	m := &l.stripes[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
