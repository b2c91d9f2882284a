package memory

import (
	"context"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/usecase"
)

// MutexLedger 是以「每個帳戶一把 RWMutex」實現的帳本
//
// 結構:
//
//	store: 帳戶表，啟動後唯讀
//
// 不同帳戶的請求完全平行；同一帳戶的交易依序執行，對帳單可同時讀取
type MutexLedger struct {
	store *AccountStore
}

// NewMutexLedger 建立一個新的 MutexLedger 實例
func NewMutexLedger(store *AccountStore) *MutexLedger {
	return &MutexLedger{
		store: store,
	}
}

// ApplyTransaction 對單一帳戶套用交易 (獨占鎖)
//
// 參數:
//
//	ctx: 上下文
//	accountID: 帳戶 ID
//	tran: 已驗證的交易
//
// 回傳:
//
//	domain.Status: 交易後的 (limit, balance)
//	error: ErrAccountNotFound / ErrLimitExceeded / ctx 錯誤
func (m *MutexLedger) ApplyTransaction(ctx context.Context, accountID uint8, tran domain.Transaction) (domain.Status, error) {
	handle, ok := m.store.Get(accountID)
	if !ok {
		return domain.Status{}, domain.ErrAccountNotFound
	}

	var status domain.Status
	err := handle.Update(ctx, func(a *domain.Account) error {
		var applyErr error
		status, applyErr = a.Apply(tran)
		return applyErr
	})
	if err != nil {
		return domain.Status{}, err
	}
	return status, nil
}

// ReadStatement 讀取對帳單 (共享鎖)
func (m *MutexLedger) ReadStatement(ctx context.Context, accountID uint8) (domain.Statement, error) {
	handle, ok := m.store.Get(accountID)
	if !ok {
		return domain.Statement{}, domain.ErrAccountNotFound
	}

	var statement domain.Statement
	err := handle.View(ctx, func(a *domain.Account) {
		statement = a.Statement()
	})
	if err != nil {
		return domain.Statement{}, err
	}
	return statement, nil
}

// AccountIDs 回傳所有帳戶 ID
func (m *MutexLedger) AccountIDs() []uint8 {
	return m.store.IDs()
}

var _ usecase.Ledger = (*MutexLedger)(nil)
