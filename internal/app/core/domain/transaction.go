package domain

// TransactionKind 交易類型
// 為了節省記憶體，使用 uint8
type TransactionKind uint8

const (
	// 入帳
	TransactionKindCredit TransactionKind = 1
	// 扣款
	TransactionKindDebit TransactionKind = 2
)

// 對外協議使用的交易類型代碼
const (
	CreditToken = "c"
	DebitToken  = "d"
)

// ParseTransactionKind 將協議代碼轉為 TransactionKind，只接受 "c" / "d"
func ParseTransactionKind(token string) (TransactionKind, error) {
	switch token {
	case CreditToken:
		return TransactionKindCredit, nil
	case DebitToken:
		return TransactionKindDebit, nil
	default:
		return 0, ErrInvalidTransactionKind
	}
}

// Token 回傳協議代碼
func (k TransactionKind) Token() string {
	switch k {
	case TransactionKindCredit:
		return CreditToken
	case TransactionKindDebit:
		return DebitToken
	default:
		return ""
	}
}

func (k TransactionKind) String() string {
	switch k {
	case TransactionKindCredit:
		return "credit"
	case TransactionKindDebit:
		return "debit"
	default:
		return "unknown"
	}
}

// Transaction 交易紀錄，建立後不再修改
// 成功套用後所有權轉移給帳戶的歷史紀錄
type Transaction struct {
	// Value: 金額 (最小貨幣單位)
	Value int64
	// Description: 描述 (長度由外部驗證，1~10)
	Description string
	// Kind: 放到最後面，利用 Padding 空間
	Kind TransactionKind
}
