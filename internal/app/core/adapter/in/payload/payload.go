// Package payload 定義對外協議的請求 / 回應格式，HTTP 與 gRPC 共用
//
// 請求欄位的驗證全部在這裡完成，核心只會收到合法的 domain.Transaction
package payload

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
)

// ErrInvalidPayload 請求格式或欄位不合法
var ErrInvalidPayload = errors.New("invalid payload")

var validate = validator.New(validator.WithRequiredStructEnabled())

// TransactionRequest POST /clientes/:id/transacoes 的 body
type TransactionRequest struct {
	Value       *int64  `json:"valor" validate:"required,gte=0"`
	Kind        string  `json:"tipo" validate:"required,oneof=c d"`
	Description *string `json:"descricao" validate:"required,min=1,max=10"`
}

// DecodeTransaction 解析並驗證 JSON body
func DecodeTransaction(body []byte) (domain.Transaction, error) {
	var req TransactionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return req.ToTransaction()
}

// ToTransaction 驗證後轉成 domain.Transaction
func (r TransactionRequest) ToTransaction() (domain.Transaction, error) {
	if err := validate.Struct(r); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	kind, err := domain.ParseTransactionKind(r.Kind)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return domain.Transaction{
		Value:       *r.Value,
		Kind:        kind,
		Description: *r.Description,
	}, nil
}

// TransactionResponse 交易成功的回應
type TransactionResponse struct {
	Limit   int64 `json:"limite"`
	Balance int64 `json:"saldo"`
}

func NewTransactionResponse(status domain.Status) TransactionResponse {
	return TransactionResponse{
		Limit:   status.Limit,
		Balance: status.Balance,
	}
}

// StatementResponse GET /clientes/:id/extrato 的回應
type StatementResponse struct {
	Balance      BalanceView       `json:"saldo"`
	Transactions []TransactionView `json:"ultimas_transacoes"`
}

type BalanceView struct {
	Total       int64     `json:"total"`
	Limit       int64     `json:"limite"`
	StatementAt time.Time `json:"data_extrato"`
}

type TransactionView struct {
	Value       int64  `json:"valor"`
	Kind        string `json:"tipo"`
	Description string `json:"descricao"`
}

func NewStatementResponse(st domain.Statement) StatementResponse {
	// 沒有交易時輸出 [] 而不是 null
	views := make([]TransactionView, 0, len(st.Transactions))
	for _, tran := range st.Transactions {
		views = append(views, TransactionView{
			Value:       tran.Value,
			Kind:        tran.Kind.Token(),
			Description: tran.Description,
		})
	}
	return StatementResponse{
		Balance: BalanceView{
			Total:       st.Balance,
			Limit:       st.Limit,
			StatementAt: st.GeneratedAt,
		},
		Transactions: views,
	}
}
