package rest

import (
	"context"
	"errors"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/adapter/in/payload"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/usecase"
)

// Server 對外 HTTP 介面 (fiber)
//
// 不掛 recover middleware：核心的 invariant panic 要讓程序直接結束
type Server struct {
	app  *fiber.App
	core *usecase.CoreUseCase
	log  zerolog.Logger
}

func NewServer(core *usecase.CoreUseCase, log zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "go-rinha-ledger",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	s := &Server{
		app:  app,
		core: core,
		log:  log,
	}
	app.Use(requestID(log), accessLog(log))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	clientes := s.app.Group("/clientes")
	clientes.Post("/:id/transacoes", s.postTransaction)
	clientes.Get("/:id/extrato", s.getStatement)
}

// App 回傳底層 fiber.App (測試用)
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen 阻塞直到 server 關閉
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown 等待進行中的請求完成後關閉
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// postTransaction POST /clientes/:id/transacoes
func (s *Server) postTransaction(c *fiber.Ctx) error {
	id, ok := parseAccountID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	tran, err := payload.DecodeTransaction(c.Body())
	if err != nil {
		return c.SendStatus(fiber.StatusUnprocessableEntity)
	}

	status, err := s.core.ApplyTransaction(c.UserContext(), id, tran)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(payload.NewTransactionResponse(status))
}

// getStatement GET /clientes/:id/extrato
func (s *Server) getStatement(c *fiber.Ctx) error {
	id, ok := parseAccountID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	statement, err := s.core.ReadStatement(c.UserContext(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(payload.NewStatementResponse(statement))
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"accounts": s.core.AccountCount(),
	})
}

// writeError 將 domain 錯誤轉成 HTTP 狀態碼
func (s *Server) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, domain.ErrLimitExceeded),
		errors.Is(err, domain.ErrBalanceOverflow),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidTransactionKind):
		return c.SendStatus(fiber.StatusUnprocessableEntity)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.SendStatus(fiber.StatusServiceUnavailable)
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("unexpected ledger error")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}

// parseAccountID 路徑上的 ID 必須是 uint8，否則視同帳戶不存在
func parseAccountID(raw string) (uint8, bool) {
	id, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(id), true
}

// errorHandler 只輸出狀態碼，不輸出 body
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.SendStatus(code)
}
