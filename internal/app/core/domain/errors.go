package domain

import "errors"

var (
	// ErrNegativeAmount 交易金額不可為負數
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrLimitExceeded 扣款後餘額會低於 -limit (透支額度不足)
	ErrLimitExceeded = errors.New("overdraft limit exceeded")

	// ErrBalanceOverflow 入帳後餘額超出 int64 範圍
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists 帳戶已存在 (初始化時 ID 重複)
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrNegativeLimit 透支額度不可為負數
	ErrNegativeLimit = errors.New("limit must not be negative")

	// ErrInvalidTransactionKind 交易類型只接受 "c" 或 "d"
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
)
