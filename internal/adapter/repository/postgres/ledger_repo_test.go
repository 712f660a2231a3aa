package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepositoryCheckConsistency(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery("FROM move_lines l").
		WillReturnRows(pgxmock.NewRows([]string{"debit", "credit"}).AddRow("1500.25", "1500.25"))

	debit, credit, err := NewLedgerRepository(mock).CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1500.25", debit.String())
	assert.True(t, debit.Equal(credit))
	assertExpectations(t, mock)
}

func TestLedgerRepositoryCheckConsistencyError(t *testing.T) {
	mock := newMockPool(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("FROM move_lines l").WillReturnError(boom)

	_, _, err := NewLedgerRepository(mock).CheckConsistency(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestLedgerRepositoryUnbalancedMoves(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery("HAVING SUM").
		WithArgs(int32(50)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("move-3").AddRow("move-9"))

	ids, err := NewLedgerRepository(mock).UnbalancedMoves(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"move-3", "move-9"}, ids)
	assertExpectations(t, mock)
}
