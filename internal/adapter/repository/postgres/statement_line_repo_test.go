package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/iho/payproc/internal/domain"
)

func TestStatementLineRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery("FROM statement_lines s").
		WithArgs("stl-404").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewStatementLineRepository(mock).GetByID(context.Background(), nil, "stl-404")
	require.ErrorIs(t, err, domain.ErrStatementLineNotFound)
	assertExpectations(t, mock)
}

func TestStatementLineRepositorySetMove(t *testing.T) {
	mock := newMockPool(t)
	tx := beginTx(t, mock)

	mock.ExpectExec("UPDATE statement_lines SET move_id").
		WithArgs("stl-1", "move-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE statement_lines SET move_id").
		WithArgs("stl-1", "move-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewStatementLineRepository(mock)
	require.NoError(t, repo.SetMove(context.Background(), tx, "stl-1", "move-1"))
	require.ErrorIs(t, repo.SetMove(context.Background(), tx, "stl-1", "move-2"), domain.ErrStatementLineNotFound)
	assertExpectations(t, mock)
}
