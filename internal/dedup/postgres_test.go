package dedup

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func newMockedPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock, logger: testLogger()}, mock
}

func TestPostgresStoreIsProcessed(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"recorded", true},
		{"unknown", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, mock := newMockedPostgresStore(t)
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id=$1)`)).
				WithArgs("evt_1").
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tc.want))

			processed, err := store.IsProcessed(context.Background(), "evt_1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if processed != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, processed)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestPostgresStoreIsProcessedQueryFailure(t *testing.T) {
	store, mock := newMockedPostgresStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("evt_1").
		WillReturnError(errors.New("connection refused"))

	if _, err := store.IsProcessed(context.Background(), "evt_1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresStoreMarkProcessed(t *testing.T) {
	store, mock := newMockedPostgresStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO processed_events (event_id, payload) VALUES ($1, $2)`)).
		WithArgs("evt_1", `{"id":"evt_1"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := store.MarkProcessed(context.Background(), "evt_1", []byte(`{"id":"evt_1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreMarkProcessedConflictIsSilent(t *testing.T) {
	store, mock := newMockedPostgresStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO processed_events`)).
		WithArgs("evt_1", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	if err := store.MarkProcessed(context.Background(), "evt_1", nil); err != nil {
		t.Fatalf("conflicting mark must not error: %v", err)
	}
}
