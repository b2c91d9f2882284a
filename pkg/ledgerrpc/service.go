// Package ledgerrpc 定義 ledger.v1.LedgerService 的 gRPC 介面
//
// 訊息欄位與 HTTP 協議相同 (valor / tipo / descricao ...)，走 JSON codec
package ledgerrpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const (
	ServiceName = "ledger.v1.LedgerService"

	ApplyTransactionMethod = "/" + ServiceName + "/ApplyTransaction"
	ReadStatementMethod    = "/" + ServiceName + "/ReadStatement"
)

type ApplyTransactionRequest struct {
	AccountID   uint32  `json:"account_id"`
	Value       *int64  `json:"valor"`
	Kind        string  `json:"tipo"`
	Description *string `json:"descricao"`
}

type ApplyTransactionResponse struct {
	Limit   int64 `json:"limite"`
	Balance int64 `json:"saldo"`
}

type ReadStatementRequest struct {
	AccountID uint32 `json:"account_id"`
}

type ReadStatementResponse struct {
	Balance      Balance       `json:"saldo"`
	Transactions []Transaction `json:"ultimas_transacoes"`
}

type Balance struct {
	Total       int64     `json:"total"`
	Limit       int64     `json:"limite"`
	StatementAt time.Time `json:"data_extrato"`
}

type Transaction struct {
	Value       int64  `json:"valor"`
	Kind        string `json:"tipo"`
	Description string `json:"descricao"`
}

// LedgerServiceServer server 端需實作的介面
type LedgerServiceServer interface {
	ApplyTransaction(context.Context, *ApplyTransactionRequest) (*ApplyTransactionResponse, error)
	ReadStatement(context.Context, *ReadStatementRequest) (*ReadStatementResponse, error)
}

// RegisterLedgerServiceServer 註冊服務
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ApplyTransaction",
			Handler:    applyTransactionHandler,
		},
		{
			MethodName: "ReadStatement",
			Handler:    readStatementHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

func applyTransactionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ApplyTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).ApplyTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ApplyTransactionMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LedgerServiceServer).ApplyTransaction(ctx, req.(*ApplyTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func readStatementHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReadStatementRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).ReadStatement(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReadStatementMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LedgerServiceServer).ReadStatement(ctx, req.(*ReadStatementRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// LedgerServiceClient client 端
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

func (c *LedgerServiceClient) ApplyTransaction(ctx context.Context, in *ApplyTransactionRequest, opts ...grpc.CallOption) (*ApplyTransactionResponse, error) {
	out := new(ApplyTransactionResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, ApplyTransactionMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerServiceClient) ReadStatement(ctx context.Context, in *ReadStatementRequest, opts ...grpc.CallOption) (*ReadStatementResponse, error) {
	out := new(ReadStatementResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, ReadStatementMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
