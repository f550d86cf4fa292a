package token

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RefreshFunc exchanges the current token for a fresh one. A successful
// refresh is expected to schedule the next run itself.
type RefreshFunc func() error

// FailureFunc runs when a background refresh fails terminally, typically
// forcing a logout back to the anonymous state.
type FailureFunc func()

// Scheduler owns the single background refresh timer. Scheduling a new
// refresh cancels and replaces any pending one, so at most one refresh
// attempt is ever outstanding.
type Scheduler struct {
	lock       sync.Mutex
	timer      *time.Timer
	cancelled  bool
	refreshing bool
	refresh    RefreshFunc
	onFailure  FailureFunc
	lead       scheduleConfig
}

type scheduleConfig struct {
	factor float64
	min    time.Duration
}

// NewScheduler creates a refresh scheduler. factor is the fraction of the
// token's remaining lifetime to wait before refreshing; min is the floor
// on that wait.
func NewScheduler(refresh RefreshFunc, onFailure FailureFunc, factor float64, min time.Duration) *Scheduler {
	return &Scheduler{
		refresh:   refresh,
		onFailure: onFailure,
		lead:      scheduleConfig{factor: factor, min: min},
	}
}

// Schedule decodes the token's expiry and arms the refresh timer at the
// configured fraction of the remaining lifetime. It returns the armed
// delay so callers can observe the schedule; a zero delay with a nil
// error means a cancellation raced the in-flight refresh and the timer
// stayed disarmed.
func (s *Scheduler) Schedule(rawToken string) (time.Duration, error) {
	exp, err := Expiry(rawToken)
	if err != nil {
		return 0, err
	}
	delay := refreshDelay(exp, NowTimeFunc(), s.lead)

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.cancelled && s.refreshing {
		// Cancelled while this refresh was in flight; the re-arm coming
		// out of that refresh must not resurrect the timer.
		return 0, nil
	}
	s.cancelled = false
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.run)

	log.Debug().Dur("delay", delay).Time("exp", exp).Msg("Scheduled token refresh")
	return delay, nil
}

// Cancel stops any pending refresh. A refresh already in flight cannot
// re-arm the timer afterwards; the next explicit Schedule revives it.
func (s *Scheduler) Cancel() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.cancelled = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) run() {
	s.lock.Lock()
	if s.cancelled {
		s.lock.Unlock()
		return
	}
	s.refreshing = true
	s.lock.Unlock()

	err := s.refresh()

	s.lock.Lock()
	s.refreshing = false
	s.lock.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("Background token refresh failed")
		if s.onFailure != nil {
			s.onFailure()
		}
	}
}

// refreshDelay computes how long to wait before refreshing a token that
// expires at exp: the configured fraction of the remaining lifetime,
// never less than the floor.
func refreshDelay(exp, now time.Time, lead scheduleConfig) time.Duration {
	ttl := exp.Sub(now)
	delay := time.Duration(float64(ttl) * lead.factor)
	if delay < lead.min {
		delay = lead.min
	}
	return delay
}
