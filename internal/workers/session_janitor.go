// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/rs/zerolog"
)

// sessionJanitor periodically removes server-side sessions that have
// outlived the configured session duration. Without it an in-memory session
// store only shrinks on explicit logout or account deletion.
type sessionJanitor struct {
	sessions store.SessionStore
	maxAge   time.Duration
	interval time.Duration
	logger   *logger.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionJanitor constructs a [Worker] that prunes sessions older than
// cfg.SessionDuration. The sweep interval is a quarter of the session
// duration, clamped to at least one minute.
func NewSessionJanitor(sessions store.SessionStore, cfg config.Auth, log *logger.Logger) Worker {
	interval := cfg.SessionDuration / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	l := log.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "session-janitor")
	})

	return &sessionJanitor{
		sessions: sessions,
		maxAge:   cfg.SessionDuration,
		interval: interval,
		logger:   l,
		stop:     make(chan struct{}),
	}
}

// Run starts the sweep loop on its own goroutine and returns. The loop runs
// until Stop is called.
func (j *sessionJanitor) Run() {
	j.logger.Info().
		Dur("max_age", j.maxAge).
		Dur("interval", j.interval).
		Msg("starting session janitor")

	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.sweep(context.Background())
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop. Safe to call more than once.
func (j *sessionJanitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.stop)
		j.logger.Info().Msg("session janitor stopped")
	})
}

// sweep removes every session established before now minus the max age.
func (j *sessionJanitor) sweep(ctx context.Context) {
	removed, err := j.sessions.DeleteOlderThan(ctx, time.Now().Add(-j.maxAge))
	if err != nil {
		j.logger.Err(err).Msg("session sweep failed")
		return
	}

	if removed > 0 {
		j.logger.Info().Int("removed", removed).Msg("stale sessions removed")
	}
}
