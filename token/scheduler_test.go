package token_test

import (
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/token"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestExpiryDecodesExpClaim(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwtlib.MapClaims{"exp": exp.Unix(), "sub": "u1"})

	decoded, err := token.Expiry(raw)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(exp))
}

func TestExpiryRejectsGarbage(t *testing.T) {
	_, err := token.Expiry("not-a-jwt")
	require.Error(t, err)
}

func TestExpiryRejectsMissingExpClaim(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"sub": "u1"})

	_, err := token.Expiry(raw)
	require.ErrorIs(t, err, internalerrors.ErrMissingExpiry)
}

func TestScheduleArmsAtEightyPercentOfLifetime(t *testing.T) {
	now := time.Now()
	token.NowTimeFunc = func() time.Time { return now }
	defer func() { token.NowTimeFunc = time.Now }()

	raw := signedToken(t, jwtlib.MapClaims{"exp": now.Add(100 * time.Second).Unix()})

	s := token.NewScheduler(func() error { return nil }, nil, 0.8, 5*time.Second)
	defer s.Cancel()

	delay, err := s.Schedule(raw)
	require.NoError(t, err)
	// Unix truncation can shave up to a second off the TTL.
	assert.InDelta(t, (80 * time.Second).Seconds(), delay.Seconds(), 1.0)
}

func TestScheduleEnforcesMinimumLead(t *testing.T) {
	now := time.Now()
	token.NowTimeFunc = func() time.Time { return now }
	defer func() { token.NowTimeFunc = time.Now }()

	raw := signedToken(t, jwtlib.MapClaims{"exp": now.Add(2 * time.Second).Unix()})

	s := token.NewScheduler(func() error { return nil }, nil, 0.8, 5*time.Second)
	defer s.Cancel()

	delay, err := s.Schedule(raw)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, delay)
}

func TestScheduleRunsRefresh(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"exp": time.Now().Add(50 * time.Millisecond).Unix()})

	var calls atomic.Int32
	s := token.NewScheduler(func() error {
		calls.Add(1)
		return nil
	}, nil, 0.8, time.Millisecond)
	defer s.Cancel()

	_, err := s.Schedule(raw)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduleReplacesPendingTimer(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"exp": time.Now().Add(2 * time.Second).Unix()})

	var calls atomic.Int32
	s := token.NewScheduler(func() error {
		calls.Add(1)
		return nil
	}, nil, 0.8, 20*time.Millisecond)
	defer s.Cancel()

	_, err := s.Schedule(raw)
	require.NoError(t, err)
	_, err = s.Schedule(raw)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFailedRefreshTriggersFailureCallback(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"exp": time.Now().Unix()})

	var failed atomic.Bool
	s := token.NewScheduler(
		func() error { return internalerrors.ErrRefreshFailed },
		func() { failed.Store(true) },
		0.8, time.Millisecond,
	)
	defer s.Cancel()

	_, err := s.Schedule(raw)
	require.NoError(t, err)

	require.Eventually(t, failed.Load, 2*time.Second, 10*time.Millisecond)
}

func TestCancelDuringRefreshDoesNotRearm(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"exp": time.Now().Unix()})

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	var s *token.Scheduler
	s = token.NewScheduler(func() error {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			// A successful refresh re-arms the timer for the new token.
			_, err := s.Schedule(raw)
			return err
		}
		return nil
	}, nil, 0.8, time.Millisecond)

	_, err := s.Schedule(raw)
	require.NoError(t, err)

	<-started
	s.Cancel()
	close(release)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a cancelled scheduler must stay cancelled")
}

func TestCancelStopsPendingRefresh(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	var calls atomic.Int32
	s := token.NewScheduler(func() error {
		calls.Add(1)
		return nil
	}, nil, 0.8, 30*time.Millisecond)

	_, err := s.Schedule(raw)
	require.NoError(t, err)
	s.Cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
