package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ApplyTransaction(ctx context.Context, accountID uint8, tran domain.Transaction) (domain.Status, error) {
	args := m.Called(ctx, accountID, tran)
	return args.Get(0).(domain.Status), args.Error(1)
}

func (m *MockLedger) ReadStatement(ctx context.Context, accountID uint8) (domain.Statement, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.Statement), args.Error(1)
}

func (m *MockLedger) AccountIDs() []uint8 {
	args := m.Called()
	return args.Get(0).([]uint8)
}

func TestCoreUseCase_ApplyTransaction(t *testing.T) {
	tran := domain.Transaction{Value: 10, Kind: domain.TransactionKindDebit, Description: "pix"}

	tests := []struct {
		name    string
		status  domain.Status
		err     error
		wantErr error
	}{
		{name: "applied", status: domain.Status{Limit: 100, Balance: -10}},
		{name: "overdraft", err: domain.ErrLimitExceeded, wantErr: domain.ErrLimitExceeded},
		{name: "not found", err: domain.ErrAccountNotFound, wantErr: domain.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := new(MockLedger)
			ledger.On("ApplyTransaction", mock.Anything, uint8(1), tran).Return(tt.status, tt.err)

			core := NewCoreUseCase(ledger)
			status, err := core.ApplyTransaction(context.Background(), 1, tran)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.Status{}, status)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.status, status)
			}
			ledger.AssertExpectations(t)
		})
	}
}

func TestCoreUseCase_ReadStatementStampsTime(t *testing.T) {
	fixed := time.Date(2024, 1, 17, 2, 34, 41, 0, time.FixedZone("BRT", -3*3600))
	ledger := new(MockLedger)
	ledger.On("ReadStatement", mock.Anything, uint8(3)).Return(domain.Statement{Balance: 5, Limit: 1_000_000}, nil)

	core := NewCoreUseCase(ledger, WithClock(func() time.Time { return fixed }))
	st, err := core.ReadStatement(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, int64(5), st.Balance)
	assert.True(t, st.GeneratedAt.Equal(fixed))
	assert.Equal(t, time.UTC, st.GeneratedAt.Location())
	ledger.AssertExpectations(t)
}

func TestCoreUseCase_ReadStatementNotFound(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("ReadStatement", mock.Anything, uint8(99)).Return(domain.Statement{}, domain.ErrAccountNotFound)

	core := NewCoreUseCase(ledger)
	_, err := core.ReadStatement(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCoreUseCase_AccountCount(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("AccountIDs").Return([]uint8{1, 2, 3})

	assert.Equal(t, 3, NewCoreUseCase(ledger).AccountCount())
}

func TestStaticSeeder(t *testing.T) {
	seeds := StaticSeeder(domain.DefaultAccountSeeds())
	got, err := seeds.LoadAccountSeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAccountSeeds(), got)

	// 回傳的是複本
	got[0].Limit = 1
	assert.Equal(t, int64(100_000), seeds[0].Limit)
}
