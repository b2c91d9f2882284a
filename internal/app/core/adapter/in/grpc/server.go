package grpc

import (
	"context"
	"errors"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/adapter/in/payload"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-rinha-ledger/pkg/ledgerrpc"
)

// GrpcServer 實作 ledgerrpc.LedgerServiceServer
type GrpcServer struct {
	core *usecase.CoreUseCase
}

var _ ledgerrpc.LedgerServiceServer = (*GrpcServer)(nil)

func NewGrpcServer(core *usecase.CoreUseCase) *GrpcServer {
	return &GrpcServer{core: core}
}

// ApplyTransaction 驗證規則與 HTTP 相同
//
// 回傳:
//
//	codes.NotFound: 帳戶不存在
//	codes.InvalidArgument: 請求欄位不合法
//	codes.FailedPrecondition: 超過額度或餘額溢位
func (s *GrpcServer) ApplyTransaction(ctx context.Context, req *ledgerrpc.ApplyTransactionRequest) (*ledgerrpc.ApplyTransactionResponse, error) {
	id, ok := accountID(req.AccountID)
	if !ok {
		return nil, status.Error(codes.NotFound, domain.ErrAccountNotFound.Error())
	}
	tran, err := payload.TransactionRequest{
		Value:       req.Value,
		Kind:        req.Kind,
		Description: req.Description,
	}.ToTransaction()
	if err != nil {
		return nil, toStatus(err)
	}

	st, err := s.core.ApplyTransaction(ctx, id, tran)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ledgerrpc.ApplyTransactionResponse{
		Limit:   st.Limit,
		Balance: st.Balance,
	}, nil
}

func (s *GrpcServer) ReadStatement(ctx context.Context, req *ledgerrpc.ReadStatementRequest) (*ledgerrpc.ReadStatementResponse, error) {
	id, ok := accountID(req.AccountID)
	if !ok {
		return nil, status.Error(codes.NotFound, domain.ErrAccountNotFound.Error())
	}
	st, err := s.core.ReadStatement(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &ledgerrpc.ReadStatementResponse{
		Balance: ledgerrpc.Balance{
			Total:       st.Balance,
			Limit:       st.Limit,
			StatementAt: st.GeneratedAt,
		},
		Transactions: make([]ledgerrpc.Transaction, 0, len(st.Transactions)),
	}
	for _, t := range st.Transactions {
		resp.Transactions = append(resp.Transactions, ledgerrpc.Transaction{
			Value:       t.Value,
			Kind:        t.Kind.Token(),
			Description: t.Description,
		})
	}
	return resp, nil
}

func accountID(raw uint32) (uint8, bool) {
	if raw > math.MaxUint8 {
		return 0, false
	}
	return uint8(raw), true
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, payload.ErrInvalidPayload),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidTransactionKind):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrLimitExceeded),
		errors.Is(err, domain.ErrBalanceOverflow):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
