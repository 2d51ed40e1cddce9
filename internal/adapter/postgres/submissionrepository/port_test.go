package submissionrepository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/code-round.net/internal/adapter/logging"
	"gitlab.com/code-round.net/internal/domain"
)

func TestInsertQuery(t *testing.T) {
	doc := "two-sum_x.py"
	s := &domain.Submission{
		ID:          uuid.New(),
		TeamID:      "team_a",
		ProblemID:   "two-sum",
		Language:    "python",
		Status:      domain.StatusAccepted,
		Score:       "100.00",
		Document:    &doc,
		SubmittedAt: time.Now(),
	}

	query, args, err := insertQuery("public", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO public.submissions (id, team_id, problem_id, language, status, score, document, submitted_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING"
	if query != want {
		t.Fatalf("query = %q\nwant    %q", query, want)
	}
	if len(args) != 8 || args[4] != "Accepted" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestSelectByTeamQuery(t *testing.T) {
	query, args, err := selectByTeamQuery("grading", "team_a", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id, team_id, problem_id, language, status, score, document, submitted_at FROM grading.submissions " +
		"WHERE team_id = $1 ORDER BY submitted_at DESC LIMIT $2"
	if query != want {
		t.Fatalf("query = %q\nwant    %q", query, want)
	}
	if len(args) != 2 || args[0] != "team_a" || args[1] != 20 {
		t.Fatalf("unexpected args %v", args)
	}
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestRepositoryRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := NewSubmissionRepository(db, logging.NewNopLogger(), "public")
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	team := "test_" + uuid.NewString()[:8]
	s := &domain.Submission{
		ID:          uuid.New(),
		TeamID:      team,
		ProblemID:   "two-sum",
		Language:    "python",
		Status:      domain.StatusAccepted,
		Score:       "100.00",
		SubmittedAt: time.Now().UTC(),
	}
	if err := repo.SaveSubmission(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveSubmission(ctx, s); err != nil {
		t.Fatalf("replayed save: %v", err)
	}

	got, err := repo.GetSubmissionsByTeam(ctx, team, 10)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].ID != s.ID || got[0].Document != nil {
		t.Fatalf("unexpected rows %+v", got)
	}
}
