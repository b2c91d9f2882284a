package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-rinha-ledger/internal/logger"
)

// CoreUseCase 是核心業務邏輯層
type CoreUseCase struct {
	ledger Ledger
	now    func() time.Time
	log    zerolog.Logger
}

// Option 設定 CoreUseCase
type Option func(*CoreUseCase)

// WithClock 替換時間來源 (測試用)
func WithClock(now func() time.Time) Option {
	return func(c *CoreUseCase) {
		c.now = now
	}
}

// WithLogger 設定 logger
func WithLogger(log zerolog.Logger) Option {
	return func(c *CoreUseCase) {
		c.log = log
	}
}

func NewCoreUseCase(ledger Ledger, opts ...Option) *CoreUseCase {
	c := &CoreUseCase{
		ledger: ledger,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ApplyTransaction 處理交易
//
// 回傳:
//
//	domain.Status: 成功時的 (limit, balance)
//	error: domain.ErrAccountNotFound / domain.ErrLimitExceeded 都是一般回傳值
func (c *CoreUseCase) ApplyTransaction(ctx context.Context, accountID uint8, tran domain.Transaction) (domain.Status, error) {
	status, err := c.ledger.ApplyTransaction(ctx, accountID, tran)
	if err != nil {
		c.logger(ctx).Debug().
			Err(err).
			Uint8("account_id", accountID).
			Stringer("kind", tran.Kind).
			Int64("value", tran.Value).
			Msg("transaction rejected")
		return domain.Status{}, err
	}
	return status, nil
}

// ReadStatement 取得對帳單，並標上產生時間
func (c *CoreUseCase) ReadStatement(ctx context.Context, accountID uint8) (domain.Statement, error) {
	statement, err := c.ledger.ReadStatement(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.logger(ctx).Debug().Uint8("account_id", accountID).Msg("statement for unknown account")
		}
		return domain.Statement{}, err
	}
	statement.GeneratedAt = c.now().UTC()
	return statement, nil
}

// logger 優先使用請求 context 內帶 request_id 的 logger
func (c *CoreUseCase) logger(ctx context.Context) *zerolog.Logger {
	if l := logger.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return &l
	}
	return &c.log
}

// AccountCount 帳戶數量
func (c *CoreUseCase) AccountCount() int {
	return len(c.ledger.AccountIDs())
}
