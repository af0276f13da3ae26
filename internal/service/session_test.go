package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/health"
	"emptycup-directory/internal/service"
	"emptycup-directory/internal/view"
)

type fixedSource struct {
	ps  []domain.Profile
	err error
}

func (s fixedSource) Fetch(context.Context) ([]domain.Profile, error) { return s.ps, s.err }

func sample() []domain.Profile {
	ps := domain.SampleProfiles()
	for i := range ps {
		ps[i].ID = int64(i + 1)
	}
	return ps
}

func TestManager_CreateLoadsProfilesAndProbes(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer api.Close()

	m := service.NewManager(service.Options{
		Source: fixedSource{ps: sample()},
		Prober: health.NewProber(api.URL, nil),
	})
	s, splash := m.Create(context.Background())
	require.NotNil(t, splash)
	assert.False(t, splash.OK, "probe failure is advisory")
	assert.Len(t, s.ID, 32)

	page, err := s.Do("", nil)
	require.NoError(t, err)
	assert.Len(t, page.Cards, 3)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestManager_LoadFailureGivesEmptyDirectory(t *testing.T) {
	m := service.NewManager(service.Options{Source: fixedSource{err: errors.New("dial tcp: refused")}})
	s, splash := m.Create(context.Background())
	assert.Nil(t, splash)

	page, err := s.Do("", nil)
	require.NoError(t, err)
	assert.Empty(t, page.Cards)
	assert.Equal(t, view.EmptyMessage, page.Empty)
}

func TestManager_DeleteAndNotFound(t *testing.T) {
	m := service.NewManager(service.Options{Source: fixedSource{ps: sample()}})
	s, _ := m.Create(context.Background())

	require.NoError(t, m.Delete(s.ID))
	_, err := m.Get(s.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(s.ID), service.ErrSessionNotFound)
}

func activeSessions(t *testing.T) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "directory_sessions_active" {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("directory_sessions_active not registered")
	return 0
}

func TestManager_ActiveGaugeUnderConcurrentChurn(t *testing.T) {
	m := service.NewManager(service.Options{Source: fixedSource{ps: sample()}})
	base := activeSessions(t)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _ := m.Create(context.Background())
			if i%2 == 0 {
				assert.NoError(t, m.Delete(s.ID))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, base+n/2, activeSessions(t))
	assert.Equal(t, n/2, m.Len())

	assert.ErrorIs(t, m.Delete("missing"), service.ErrSessionNotFound)
	assert.Equal(t, base+n/2, activeSessions(t), "unknown id leaves the gauge alone")
}

func TestManager_SweepExpiresIdleSessions(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	m := service.NewManager(service.Options{Source: fixedSource{ps: sample()}, TTL: 10 * time.Minute, Now: clock})
	idle, _ := m.Create(context.Background())
	busy, _ := m.Create(context.Background())

	advance(8 * time.Minute)
	_, err := m.Get(busy.ID)
	require.NoError(t, err)

	advance(5 * time.Minute)
	assert.Equal(t, 1, m.Sweep(clock()))
	assert.Equal(t, 1, m.Len())

	_, err = m.Get(idle.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestSession_DoPropagatesError(t *testing.T) {
	m := service.NewManager(service.Options{Source: fixedSource{ps: sample()}})
	s, _ := m.Create(context.Background())

	boom := errors.New("unknown tab")
	_, err := s.Do("tab", func(*view.Controller) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := service.NewManager(service.Options{Source: fixedSource{ps: sample()}})
	_, _ = m.Create(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, m.Len())
}
