package domain

import (
	"math"
	"slices"
	"time"
)

// AccountSeed 啟動時建立帳戶所需的資料
type AccountSeed struct {
	ID    uint8
	Limit int64
}

// DefaultAccountSeeds 系統預設的五個帳戶
func DefaultAccountSeeds() []AccountSeed {
	return []AccountSeed{
		{ID: 1, Limit: 100_000},
		{ID: 2, Limit: 80_000},
		{ID: 3, Limit: 1_000_000},
		{ID: 4, Limit: 10_000_000},
		{ID: 5, Limit: 500_000},
	}
}

// Status 交易成功後的帳戶狀態
type Status struct {
	Limit   int64
	Balance int64
}

// Statement 帳戶對帳單
type Statement struct {
	Balance int64
	Limit   int64
	// Transactions 由新到舊
	Transactions []Transaction
	// GeneratedAt 由 usecase 層填入
	GeneratedAt time.Time
}

// Account 帳戶
// 本身不做同步，呼叫端需持有對應的鎖 (見 memory.AccountStore)
//
// 不變式: balance >= -limit
type Account struct {
	ID      uint8
	balance int64
	limit   int64
	history *History[Transaction]
}

// NewAccount 建立餘額為 0 的帳戶
func NewAccount(id uint8, limit int64) (*Account, error) {
	if limit < 0 {
		return nil, ErrNegativeLimit
	}
	return &Account{
		ID:      id,
		limit:   limit,
		history: NewHistory[Transaction](HistoryCapacity),
	}, nil
}

// Balance 目前餘額
func (a *Account) Balance() int64 {
	return a.balance
}

// Limit 透支額度
func (a *Account) Limit() int64 {
	return a.limit
}

// Apply 套用一筆交易
//
// 參數:
//
//	tran: 已驗證過的交易
//
// 回傳:
//
//	Status: 套用後的 (limit, balance)
//	error: ErrLimitExceeded 等，失敗時帳戶狀態完全不變
func (a *Account) Apply(tran Transaction) (Status, error) {
	if tran.Value < 0 {
		return Status{}, ErrNegativeAmount
	}

	switch tran.Kind {
	case TransactionKindCredit:
		if a.balance > 0 && tran.Value > math.MaxInt64-a.balance {
			return Status{}, ErrBalanceOverflow
		}
		a.balance += tran.Value
	case TransactionKindDebit:
		if !a.canDebit(tran.Value) {
			return Status{}, ErrLimitExceeded
		}
		a.balance -= tran.Value
	default:
		return Status{}, ErrInvalidTransactionKind
	}

	a.history.Push(tran)
	return Status{Limit: a.limit, Balance: a.balance}, nil
}

// canDebit 判斷 balance - value >= -limit
// 改寫成 value <= balance + limit，並避免 balance + limit 溢位
func (a *Account) canDebit(value int64) bool {
	if a.balance > math.MaxInt64-a.limit {
		return true
	}
	return value <= a.balance+a.limit
}

// Statement 取得對帳單 (唯讀)
func (a *Account) Statement() Statement {
	return Statement{
		Balance:      a.balance,
		Limit:        a.limit,
		Transactions: slices.Collect(a.history.Snapshot()),
	}
}

// InvariantHolds 檢查 balance >= -limit
func (a *Account) InvariantHolds() bool {
	return a.balance >= -a.limit
}
