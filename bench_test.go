package lfqueue

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
)

type distributionKind int

const (
	distUniform distributionKind = iota
	distAscending
	distDescending
)

// benchQueue is the surface shared by the lock-free queue and the baselines
// it is compared against.
type benchQueue interface {
	Offer(int) bool
	Poll() (int, bool)
	Peek() (int, bool)
}

var benchDistributions = []struct {
	name string
	kind distributionKind
}{
	{name: "Uniform", kind: distUniform},
	{name: "Ascending", kind: distAscending},
	{name: "Descending", kind: distDescending},
}

var benchWorkloads = []struct {
	name         string
	writePercent int
}{
	{name: "PeekMostly", writePercent: 10},
	{name: "Balanced", writePercent: 50},
	{name: "WriteHeavy", writePercent: 90},
}

var benchThreadCounts = []int{1, 2, 4, 8, 16}

const benchValueRange = 1 << 12

// runQueueWorkload spreads b.N operations over threads goroutines. Writes are
// split evenly between Offer and Poll so the queue stays near its prefill.
func runQueueWorkload(b *testing.B, q benchQueue, kind distributionKind, writePercent, threads int) {
	b.Helper()

	var ascending uint64
	var descending uint64
	var ops int64

	b.ResetTimer()

	var wg sync.WaitGroup
	wg.Add(threads)
	for worker := range threads {
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(worker+1) * 1_000_003))
			for atomic.AddInt64(&ops, 1) <= int64(b.N) {
				var v int
				switch kind {
				case distUniform:
					v = r.Intn(benchValueRange)
				case distAscending:
					v = int(atomic.AddUint64(&ascending, 1)-1) % benchValueRange
				case distDescending:
					v = benchValueRange - 1 - int(atomic.AddUint64(&descending, 1)-1)%benchValueRange
				}

				if r.Intn(100) < writePercent {
					if r.Intn(2) == 0 {
						q.Offer(v)
					} else {
						q.Poll()
					}
				} else {
					q.Peek()
				}
			}
		}()
	}

	wg.Wait()
	b.StopTimer()
}

func prefill(q benchQueue, n int) {
	for i := range n {
		q.Offer(i * (benchValueRange / n))
	}
}

func BenchmarkQueueWorkloads(b *testing.B) {
	for _, dist := range benchDistributions {
		b.Run(dist.name, func(b *testing.B) {
			for _, workload := range benchWorkloads {
				b.Run(workload.name, func(b *testing.B) {
					for _, threads := range benchThreadCounts {
						b.Run(fmt.Sprintf("P%d", threads), func(b *testing.B) {
							q := New[int]()
							prefill(q, 256)

							before := q.Stats()
							runQueueWorkload(b, q, dist.kind, workload.writePercent, threads)
							after := q.Stats()

							offers := after.Offers - before.Offers
							if offers <= 0 {
								offers = 1
							}
							polls := after.Polls - before.Polls
							if polls <= 0 {
								polls = 1
							}
							b.ReportMetric(float64(after.OfferCASRetries-before.OfferCASRetries)/float64(offers), "offer_retries/op")
							b.ReportMetric(float64(after.PollCASRetries-before.PollCASRetries)/float64(polls), "poll_retries/op")
						})
					}
				})
			}
		})
	}
}

func BenchmarkOfferPollPair(b *testing.B) {
	q := New[int]()
	prefill(q, 64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Offer(i % benchValueRange)
		q.Poll()
	}
}

func BenchmarkLen(b *testing.B) {
	q := New[int]()
	prefill(q, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Len()
	}
}
