// Package workload produces the per-phase CPU activity of a run: a busy
// phase that saturates its thread with branch-heavy arithmetic, and an idle
// phase that sleeps in short polls with an occasional burst of light work.
//
// Every result is folded into a package-level sink that external code can
// read, so the compiler cannot prove the phase computation dead and elide
// it.
package workload

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"
)

const (
	// bufferSize is the length of the pseudo-random operand buffer walked
	// by each busy pass.
	bufferSize = 1024

	// pollInterval is the idle-phase sleep granularity.
	pollInterval = time.Millisecond

	// DefaultPhaseDuration is the wall-clock length of one phase.
	DefaultPhaseDuration = time.Second

	// DefaultIdleChancePct is the per-poll probability, in percent, of the
	// idle phase doing a light burst of work.
	DefaultIdleChancePct = 5
)

// sink absorbs phase results. Externally visible so the busy arithmetic has
// an observable side effect.
var sink atomic.Uint64

// SinkValue returns the accumulated result sink. The value is meaningless;
// only its observability matters.
func SinkValue() uint64 {
	return sink.Load()
}

// Workload is one worker's phase generator.
type Workload interface {
	// Busy keeps the calling thread CPU-bound for roughly one phase window.
	Busy()
	// Idle keeps the calling thread near 0% utilization for roughly one
	// phase window.
	Idle()
}

// CPU is the production Workload. Each worker owns its own CPU value: the
// random source and operand buffer are private, so workers neither contend
// nor correlate.
type CPU struct {
	rng        *rand.Rand
	buf        [bufferSize]int64
	phase      time.Duration
	idleChance int
	now        func() time.Time
	sleep      func(time.Duration)
}

// Option configures a CPU workload.
type Option func(*CPU)

// WithPhaseDuration sets the wall-clock window of each phase.
func WithPhaseDuration(d time.Duration) Option {
	return func(c *CPU) {
		c.phase = d
	}
}

// WithSeed fixes the random seed. Without it the seed combines the wall
// clock and the worker index so concurrent workers stay decorrelated.
func WithSeed(seed int64) Option {
	return func(c *CPU) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithIdleChance sets the percent probability of light work per idle poll.
func WithIdleChance(pct int) Option {
	return func(c *CPU) {
		c.idleChance = pct
	}
}

// New creates the workload for one worker.
func New(worker int, opts ...Option) *CPU {
	c := &CPU{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker))),
		phase:      DefaultPhaseDuration,
		idleChance: DefaultIdleChancePct,
		now:        time.Now,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy runs branch-heavy arithmetic over the operand buffer until the phase
// window elapses. At least one full pass runs even for a sub-pass window.
func (c *CPU) Busy() {
	c.refill()
	start := c.now()
	var acc uint64
	for {
		acc ^= c.busyPass()
		if c.now().Sub(start) >= c.phase {
			break
		}
	}
	sink.Add(acc | 1)
}

// Idle sleeps through the phase window in pollInterval steps, doing a small
// burst of light arithmetic on a fraction of the polls.
func (c *CPU) Idle() {
	start := c.now()
	var acc uint64
	for {
		if c.rng.Intn(100) < c.idleChance {
			acc += c.lightPass()
		}
		if c.now().Sub(start) >= c.phase {
			break
		}
		c.sleep(pollInterval)
	}
	sink.Add(acc | 1)
}

// refill loads the operand buffer with fresh values in [-100, 100].
func (c *CPU) refill() {
	for i := range c.buf {
		c.buf[i] = int64(c.rng.Intn(201) - 100)
	}
}

// busyPass walks the buffer once, mixing integer, floating and bit
// operations with data-dependent branches. It both reads and rewrites the
// buffer so successive passes diverge.
func (c *CPU) busyPass() uint64 {
	var sum int64
	bits := ^uint64(0)
	fl := 1.0

	for i := 0; i < bufferSize; i++ {
		v := c.buf[i]

		fl *= float64(v)/100 + 1
		if fl > 1e10 || fl < -1e10 || fl == 0 {
			fl = 1
		}

		r := uint(v) & 0x3f
		bits = bits<<r | bits>>(64-r)

		if v > 0 {
			sum += v * c.buf[(i+1)%bufferSize]
			sum ^= int64(bits & 0xffff)
			if sum > 1_000_000 {
				sum %= 100
				c.buf[i] = -v
			}
		} else {
			sum -= v * c.buf[(i+2)%bufferSize]
			sum ^= int64((bits >> 32) & 0xffff)
			if sum < -1_000_000 {
				sum = -sum % 100
				c.buf[i] = v * 2
			}
		}

		if sum%2 == 0 {
			c.buf[(i+3)%bufferSize]++
		} else {
			c.buf[(i+3)%bufferSize]--
		}
	}

	return uint64(sum) ^ bits ^ math.Float64bits(fl)
}

// lightPass is the idle phase's occasional burst: a short alternating
// accumulation, branchy but far too small to register as load.
func (c *CPU) lightPass() uint64 {
	var acc int64
	for i := int64(0); i < 1000; i++ {
		if i%2 == 0 {
			acc += i * 3
		} else {
			acc -= i * 2
		}
	}
	return uint64(acc)
}
