package utils

import (
	"sync"
)

// RWLocker is the subset of sync.RWMutex the descriptor allocators lock with
type RWLocker interface {
	sync.Locker
	RLock()
	RUnlock()
}

type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}

// NewLocker returns a mutex, or a no-op locker for objects owned by an externally synchronized device
func NewLocker(synchronized bool) sync.Locker {
	if !synchronized {
		return noLock{}
	}
	return &sync.Mutex{}
}

// NewRWLocker is NewLocker for objects with read-mostly accessors
func NewRWLocker(synchronized bool) RWLocker {
	if !synchronized {
		return noLock{}
	}
	return &sync.RWMutex{}
}
