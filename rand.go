package lfqueue

import (
	"sync/atomic"
	"time"
)

const fallbackSeed = uint64(0x9e3779b97f4a7c15)

// xorshift is a lock-free xorshift64* generator. Concurrent callers race on
// a single CAS; a loser simply recomputes from the state it lost to.
type xorshift struct {
	state atomic.Uint64
}

func newXorshift() *xorshift {
	return newXorshiftWithSeed(uint64(time.Now().UnixNano()))
}

func newXorshiftWithSeed(seed uint64) *xorshift {
	if seed == 0 {
		seed = fallbackSeed
	}
	r := &xorshift{}
	r.state.Store(seed)
	return r
}

// Uint64 returns the next pseudo-random value. The state is never zero.
func (r *xorshift) Uint64() uint64 {
	for {
		old := r.state.Load()
		x := old
		x ^= x >> 12
		x ^= x << 25
		x ^= x >> 27
		if x == 0 {
			x = fallbackSeed
		}
		if r.state.CompareAndSwap(old, x) {
			return x * 2685821657736338717
		}
	}
}
