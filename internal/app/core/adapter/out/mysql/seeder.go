package mysql

import (
	"context"
	"fmt"
	"math"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-rinha-ledger/pkg/mysql"
)

// sqlAccount 對應資料庫的 accounts 表 (只讀)
type sqlAccount struct {
	ID          int64 `gorm:"primaryKey"`
	CreditLimit int64 `gorm:"column:credit_limit"`
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// AccountSeeder 啟動時從 MySQL 讀取帳戶與額度
// 餘額一律從 0 開始，交易不會寫回資料庫
type AccountSeeder struct {
	client *mysql.Client
}

func NewAccountSeeder(client *mysql.Client) *AccountSeeder {
	return &AccountSeeder{
		client: client,
	}
}

// LoadAccountSeeds 載入所有帳戶
func (s *AccountSeeder) LoadAccountSeeds(ctx context.Context) ([]domain.AccountSeed, error) {
	var rows []sqlAccount
	if err := s.client.DB().WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return toSeeds(rows)
}

// toSeeds 轉成 domain 物件，ID 必須落在 uint8 範圍
func toSeeds(rows []sqlAccount) ([]domain.AccountSeed, error) {
	seeds := make([]domain.AccountSeed, 0, len(rows))
	for _, row := range rows {
		if row.ID < 0 || row.ID > math.MaxUint8 {
			return nil, fmt.Errorf("account id %d out of range", row.ID)
		}
		if row.CreditLimit < 0 {
			return nil, fmt.Errorf("account %d: %w", row.ID, domain.ErrNegativeLimit)
		}
		seeds = append(seeds, domain.AccountSeed{
			ID:    uint8(row.ID),
			Limit: row.CreditLimit,
		})
	}
	return seeds, nil
}

var _ usecase.AccountSeeder = (*AccountSeeder)(nil)
