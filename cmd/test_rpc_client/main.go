package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-rinha-ledger/internal/logger"
	"github.com/JoeShih716/go-rinha-ledger/internal/pkg/grpcserver"
	grpcpool "github.com/JoeShih716/go-rinha-ledger/pkg/grpc"
	"github.com/JoeShih716/go-rinha-ledger/pkg/ledgerrpc"
)

// 壓測: 對同一帳戶並發扣款，最後印出對帳單
func main() {
	target := flag.String("target", "localhost:50051", "grpc address")
	accountID := flag.Uint("account", 1, "account id")
	total := flag.Int("n", 100000, "total requests")
	concurrency := flag.Int("c", 1000, "concurrency")
	value := flag.Int64("value", 1, "debit value per request")
	flag.Parse()

	log := logger.New("info", true)

	pool := grpcpool.NewPool(
		grpcpool.WithInterceptor(requestIDInterceptor),
		grpcpool.WithCallOptions(grpc.CallContentSubtype(ledgerrpc.CodecName)),
	)
	defer pool.Close()

	conn, err := pool.GetConnection(*target)
	if err != nil {
		log.Error().Err(err).Msg("did not connect")
		os.Exit(1)
	}
	c := ledgerrpc.NewLedgerServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	var applied, rejected, failed atomic.Int64
	var wg sync.WaitGroup
	wg.Add(*total)
	sem := make(chan struct{}, *concurrency)

	description := "load"
	startTime := time.Now()
	for i := 0; i < *total; i++ {
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			v := *value
			_, err := c.ApplyTransaction(ctx, &ledgerrpc.ApplyTransactionRequest{
				AccountID:   uint32(*accountID),
				Value:       &v,
				Kind:        "d",
				Description: &description,
			})
			switch status.Code(err) {
			case codes.OK:
				applied.Add(1)
			case codes.FailedPrecondition:
				rejected.Add(1)
			default:
				if failed.Add(1) == 1 {
					log.Warn().Err(err).Int("idx", idx).Msg("request failed")
				}
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(startTime)

	fmt.Printf("Completed %d requests in %v\n", *total, elapsed)
	fmt.Printf("TPS: %.2f\n", float64(*total)/elapsed.Seconds())
	fmt.Printf("applied=%d rejected=%d failed=%d\n", applied.Load(), rejected.Load(), failed.Load())

	st, err := c.ReadStatement(ctx, &ledgerrpc.ReadStatementRequest{AccountID: uint32(*accountID)})
	if err != nil {
		log.Error().Err(err).Msg("read statement")
		os.Exit(1)
	}
	fmt.Printf("balance=%d limit=%d last=%d\n", st.Balance.Total, st.Balance.Limit, len(st.Transactions))
}

// requestIDInterceptor 每次呼叫帶上新的 x-request-id，方便對照 server log
func requestIDInterceptor(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	ctx = metadata.AppendToOutgoingContext(ctx, grpcserver.MetadataRequestID, uuid.NewString())
	return invoker(ctx, method, req, reply, cc, opts...)
}
