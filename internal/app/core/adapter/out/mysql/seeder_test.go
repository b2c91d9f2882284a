package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
)

func TestToSeeds(t *testing.T) {
	seeds, err := toSeeds([]sqlAccount{
		{ID: 1, CreditLimit: 100_000},
		{ID: 2, CreditLimit: 80_000},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.AccountSeed{{ID: 1, Limit: 100_000}, {ID: 2, Limit: 80_000}}, seeds)
}

func TestToSeeds_Invalid(t *testing.T) {
	_, err := toSeeds([]sqlAccount{{ID: 256, CreditLimit: 1}})
	assert.Error(t, err)

	_, err = toSeeds([]sqlAccount{{ID: 1, CreditLimit: -1}})
	assert.ErrorIs(t, err, domain.ErrNegativeLimit)
}

func TestSQLAccount_TableName(t *testing.T) {
	assert.Equal(t, "accounts", (&sqlAccount{}).TableName())
}
