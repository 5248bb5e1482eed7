package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/war-cards/internal/game"
)

func TestIdleScanInterval(t *testing.T) {
	cases := []struct {
		idle, want time.Duration
	}{
		{2 * time.Second, time.Second},
		{2 * time.Minute, 30 * time.Second},
		{time.Hour, time.Minute},
	}
	for _, tc := range cases {
		if got := idleScanInterval(tc.idle); got != tc.want {
			t.Fatalf("idleScanInterval(%s) = %s, want %s", tc.idle, got, tc.want)
		}
	}
}

type scanRepo struct {
	mu      sync.Mutex
	matches []game.Match
	updated []string
}

func (r *scanRepo) FindIdleMatches(before time.Time) ([]game.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []game.Match
	for _, m := range r.matches {
		if m.Status == game.StatusInProgress && !m.LastActivityAt.After(before) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *scanRepo) AbandonIdleMatch(code string, before time.Time, header string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		m := &r.matches[i]
		if m.Code == code && m.Status == game.StatusInProgress && !m.LastActivityAt.After(before) {
			m.Status = game.StatusAbandoned
			m.Header = header
			r.updated = append(r.updated, code)
			return true, nil
		}
	}
	return false, nil
}

func TestRunIdleScannerStopsOnCancel(t *testing.T) {
	repo := &scanRepo{matches: []game.Match{
		{Code: "OLD00001", Status: game.StatusInProgress, LastActivityAt: time.Now().Add(-time.Hour)},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runIdleScanner(ctx, repo, time.Minute, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		repo.mu.Lock()
		n := len(repo.updated)
		repo.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("scanner never expired the idle match")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("scanner did not stop")
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.matches[0].Status != game.StatusAbandoned {
		t.Fatalf("expected abandoned, got %s", repo.matches[0].Status)
	}
}
