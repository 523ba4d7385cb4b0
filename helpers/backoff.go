package helpers

import (
	"time"
)

// Backoff is limited exponential delay for retry loops.
// Not safe for concurrent use, each retry loop owns one.
// Scenario:
// for {
//   ok := op()
//   time.Sleep(backoff.Update(ok))
// }
type Backoff struct {
	next time.Duration

	Min time.Duration
	Max time.Duration
	K   float32
	Res time.Duration // delay resolution for nice logs, default=1ms
}

// Update returns delay before next attempt: 0 after success,
// grows by K after each failure, starting at Min.
func (b *Backoff) Update(success bool) time.Duration {
	if success {
		b.Reset()
		return 0
	}
	return b.Failure()
}

func (b *Backoff) Failure() time.Duration {
	if b.next == 0 {
		b.next = b.limit(b.Min)
		return b.next
	}
	k := b.K
	if k < 1 {
		k = 1
	}
	b.next = b.limit(time.Duration(float32(b.next) * k))
	return b.next
}

func (b *Backoff) Reset() { b.next = 0 }

func (b *Backoff) limit(d time.Duration) time.Duration {
	if d < b.Min {
		d = b.Min
	}
	if b.Max != 0 && d > b.Max {
		d = b.Max
	}
	return b.round(d)
}

func (b *Backoff) round(d time.Duration) time.Duration {
	res := b.Res
	if res == 0 {
		res = 1 * time.Millisecond
	}
	return d / res * res
}
