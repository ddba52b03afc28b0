package bridge

import (
	"context"
	"time"
)

// sleepWithBackoff ждет d или останавливается по контексту.
func sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (b *Bridge) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > b.retryMax {
		return b.retryMax
	}
	return current
}

// withJitterEqual - половина задержки фиксирована, вторая половина случайна.
func (b *Bridge) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(b.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
