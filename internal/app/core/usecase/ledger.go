package usecase

import (
	"context"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
)

// Ledger 是帳務系統的介面
type Ledger interface {
	// ApplyTransaction 依 tran.Kind 入帳或扣款
	ApplyTransaction(ctx context.Context, accountID uint8, tran domain.Transaction) (domain.Status, error)
	// ReadStatement 取得餘額與最近的交易
	ReadStatement(ctx context.Context, accountID uint8) (domain.Statement, error)
	// AccountIDs 所有帳戶 ID
	AccountIDs() []uint8
}

// AccountSeeder 提供啟動時要建立的帳戶
type AccountSeeder interface {
	LoadAccountSeeds(ctx context.Context) ([]domain.AccountSeed, error)
}

// StaticSeeder 直接回傳設定檔中的帳戶
type StaticSeeder []domain.AccountSeed

// LoadAccountSeeds implements AccountSeeder.
func (s StaticSeeder) LoadAccountSeeds(ctx context.Context) ([]domain.AccountSeed, error) {
	out := make([]domain.AccountSeed, len(s))
	copy(out, s)
	return out, nil
}

var _ AccountSeeder = StaticSeeder(nil)
