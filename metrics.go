package lfqueue

import (
	"math/bits"
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stats is a point-in-time sum of a queue's contention counters. Counters
// are updated without synchronizing with each other, so a snapshot taken
// while the queue is in use may be slightly skewed between fields.
type Stats struct {
	// Offers is the number of successful splices.
	Offers int64
	// OfferCASRetries counts splice CASes lost to a concurrent change.
	OfferCASRetries int64
	// Polls is the number of elements handed out by Poll.
	Polls int64
	// PollCASRetries counts mark CASes lost to another poller.
	PollCASRetries int64
	// Unlinks counts marked nodes physically removed by any operation.
	Unlinks int64
}

type metricShard struct {
	offers          atomic.Int64
	offerCASRetries atomic.Int64
	polls           atomic.Int64
	pollCASRetries  atomic.Int64
	unlinks         atomic.Int64
	_               cpu.CacheLinePad
}

// Metrics spreads counter updates across cache-line padded shards so hot
// producers and consumers do not contend on the same word.
type Metrics struct {
	shards []metricShard
	mask   uint32
	rng    *xorshift
}

func newMetrics(rng *xorshift) *Metrics {
	shardCount := 1
	if rng != nil {
		shardCount = nextPowerOfTwo(max(runtime.GOMAXPROCS(0), 1))
	}
	return &Metrics{
		shards: make([]metricShard, shardCount),
		mask:   uint32(shardCount - 1),
		rng:    rng,
	}
}

func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}

func (m *Metrics) shard() *metricShard {
	if len(m.shards) == 1 || m.rng == nil {
		return &m.shards[0]
	}
	return &m.shards[uint32(m.rng.Uint64())&m.mask]
}

func (m *Metrics) IncOffer()         { m.shard().offers.Add(1) }
func (m *Metrics) IncOfferCASRetry() { m.shard().offerCASRetries.Add(1) }
func (m *Metrics) IncPoll()          { m.shard().polls.Add(1) }
func (m *Metrics) IncPollCASRetry()  { m.shard().pollCASRetries.Add(1) }
func (m *Metrics) IncUnlink()        { m.shard().unlinks.Add(1) }

// Snapshot sums every shard.
func (m *Metrics) Snapshot() Stats {
	var s Stats
	for i := range m.shards {
		sh := &m.shards[i]
		s.Offers += sh.offers.Load()
		s.OfferCASRetries += sh.offerCASRetries.Load()
		s.Polls += sh.polls.Load()
		s.PollCASRetries += sh.pollCASRetries.Load()
		s.Unlinks += sh.unlinks.Load()
	}
	return s
}
