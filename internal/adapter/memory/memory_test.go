package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"gitlab.com/code-round.net/internal/domain"
)

func TestResultStoreExpires(t *testing.T) {
	store := NewResultStore(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	result := &domain.ExecutionResult{ID: uuid.New(), Status: domain.StatusAccepted}
	if err := store.SaveResult(ctx, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetResult(ctx, result.ID)
	if err != nil || got != result {
		t.Fatalf("expected cached result, got %v %v", got, err)
	}

	now = now.Add(2 * time.Minute)
	got, err = store.GetResult(ctx, result.ID)
	if err != nil || got != nil {
		t.Fatalf("expected expiry, got %v %v", got, err)
	}
}

func TestSubmissionLedgerNewestFirst(t *testing.T) {
	ledger := NewSubmissionLedger()
	ctx := context.Background()
	for _, team := range []string{"a", "b", "a", "a"} {
		_ = ledger.SaveSubmission(ctx, &domain.Submission{ID: uuid.New(), TeamID: team})
	}

	got, err := ledger.GetSubmissionsByTeam(ctx, "a", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != ledger.submissions[3] || got[1] != ledger.submissions[2] {
		t.Fatalf("unexpected submissions %+v", got)
	}

	none, _ := ledger.GetSubmissionsByTeam(ctx, "c", 10)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %v", none)
	}
}

func TestRateLimiterBurstThenRefill(t *testing.T) {
	l := NewRateLimiter()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if ok, _ := l.Allow(ctx, "ip", 60, time.Minute); !ok {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "ip", 60, time.Minute); ok {
		t.Fatalf("hit 61 should be limited")
	}
	if ok, _ := l.Allow(ctx, "other", 60, time.Minute); !ok {
		t.Fatalf("keys must be independent")
	}

	now = now.Add(time.Second)
	if ok, _ := l.Allow(ctx, "ip", 60, time.Minute); !ok {
		t.Fatalf("one token should refill after a second")
	}
}
