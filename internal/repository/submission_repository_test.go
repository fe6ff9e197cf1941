package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/early-access-service/internal/domain"
)

type fakePool struct {
	tx       *fakeTx
	beginErr error
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.tx, nil
}

func (p *fakePool) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{errors.New("not used")}
}

// fakeTx fails row inserts past failAfter to simulate a mid-batch fault.
type fakeTx struct {
	pgx.Tx
	failAfter  int
	rows       int
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	t.rows++
	if t.failAfter > 0 && t.rows > t.failAfter {
		return errRow{errors.New("duplicate key value")}
	}
	return insertedRow{id: fmt.Sprintf("row-%d", t.rows)}
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type insertedRow struct{ id string }

func (r insertedRow) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.id
	*(dest[1].(*time.Time)) = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func batch(n int) []domain.Submission {
	subs := make([]domain.Submission, 0, n)
	for i := 0; i < n; i++ {
		subs = append(subs, domain.Submission{
			Name:  fmt.Sprintf("Visitor %d", i+1),
			Email: fmt.Sprintf("v%d@example.com", i+1),
			Phone: "1234567",
		})
	}
	return subs
}

func TestInsertCommitsWholeBatch(t *testing.T) {
	tx := &fakeTx{}
	repo := &submissionRepository{pool: &fakePool{tx: tx}}

	inserted, err := repo.Insert(context.Background(), batch(2))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("inserted %d rows, want 2", len(inserted))
	}
	if inserted[0].ID != "row-1" || inserted[1].ID != "row-2" {
		t.Fatalf("rows = %+v", inserted)
	}
	if !tx.committed {
		t.Fatal("batch not committed")
	}
}

func TestInsertMidBatchFailureRollsBack(t *testing.T) {
	tx := &fakeTx{failAfter: 1}
	repo := &submissionRepository{pool: &fakePool{tx: tx}}

	_, err := repo.Insert(context.Background(), batch(2))
	if err == nil {
		t.Fatal("expected mid-batch insert failure")
	}
	if tx.committed {
		t.Fatal("failed batch was committed")
	}
	if !tx.rolledBack {
		t.Fatal("failed batch was not rolled back")
	}
}

func TestInsertBeginFailure(t *testing.T) {
	repo := &submissionRepository{pool: &fakePool{beginErr: errors.New("pool exhausted")}}

	if _, err := repo.Insert(context.Background(), batch(1)); err == nil {
		t.Fatal("expected begin failure to propagate")
	}
}
