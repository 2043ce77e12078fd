// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/payday-kr/settlement-core/internal/commitmentrepo"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/internal/escrowservice"
	"github.com/payday-kr/settlement-core/internal/feepolicy"
	"github.com/payday-kr/settlement-core/internal/ledgerrepo"
	"github.com/payday-kr/settlement-core/internal/memstore"
	"github.com/payday-kr/settlement-core/internal/middleware"
	"github.com/payday-kr/settlement-core/internal/settlementdelivery"
	"github.com/payday-kr/settlement-core/internal/settlementservice"
	"github.com/payday-kr/settlement-core/internal/wagerrepo"
	"github.com/payday-kr/settlement-core/internal/wagerservice"
	"github.com/payday-kr/settlement-core/pkg/configpkg"
	"github.com/payday-kr/settlement-core/pkg/currencypkg"
)

// DriverMemory selects the in-memory store instead of Postgres.
const DriverMemory = "memory"

const defaultEntryFeeCeiling = 1_300

// Server holds the db connection, the handler router and the configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates a Server with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	policy := feepolicy.Default()
	if config.HabitSuccessBonusBps > 0 {
		policy.SuccessBonus = decimal.New(config.HabitSuccessBonusBps, -4)
	}

	if config.HabitFailRefundBps > 0 {
		policy.FailRefund = decimal.New(config.HabitFailRefundBps, -4)
	}

	ceiling := config.EntryFeeCeiling
	if ceiling == 0 {
		ceiling = defaultEntryFeeCeiling
	}

	var (
		escrowRepo   escrowservice.Repo
		escrowLedger escrowservice.Ledger
		wagRepo      wagerservice.Repo
		wagLedger    wagerservice.Ledger
		ledger       settlementservice.Ledger
	)

	if config.DBDriver == DriverMemory {
		m := memstore.New()
		escrowRepo, escrowLedger = m.Commitments, m.Ledger
		wagRepo, wagLedger = m.Wagers, m.Ledger
		ledger = m.Ledger
	} else {
		ledgerRepo := ledgerrepo.NewRepoPGS(conn)
		escrowRepo, escrowLedger = commitmentrepo.NewRepoPGS(conn), ledgerRepo
		wagRepo, wagLedger = wagerrepo.NewRepoPGS(conn), ledgerRepo
		ledger = ledgerRepo
	}

	currency := config.Currency
	if currency == "" {
		currency = currencypkg.KRW
	}

	// The platform account collects fees and funds bonuses; the Postgres
	// migration seeds it, the memory store needs it created at boot.
	_, err := ledger.CreateAccount(context.Background(), domain.Account{
		ID:       domain.PlatformAccountID,
		Currency: currency,
	})
	if err != nil && err != domain.ErrAccountExists {
		return nil, errors.New("cannot create platform account")
	}

	escrowService := escrowservice.New(escrowRepo, escrowLedger, policy)
	wagerService := wagerservice.New(wagRepo, wagLedger, policy)
	settlementService := settlementservice.New(escrowService, wagerService, ledger, policy, ceiling)

	handler := settlementdelivery.NewHandler(settlementService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", handler.CreateAccount)
	engine.GET("/accounts/:id/balance", handler.Balance)

	engine.POST("/commitments", handler.Stake)
	engine.POST("/commitments/:id/resolve", handler.ResolveCommitment)
	engine.POST("/commitments/:id/release", handler.ReleaseCommitment)

	engine.POST("/wagers", handler.OpenWager)
	engine.POST("/wagers/:id/enter", handler.EnterWager)
	engine.POST("/wagers/:id/lock", handler.LockWager)
	engine.POST("/wagers/:id/settle", handler.SettleWager)
	engine.POST("/wagers/:id/void", handler.VoidWager)

	engine.POST("/purchases", handler.Purchase)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("currency", settlementdelivery.ValidCurrency); err != nil {
			return nil, errors.New("cannot register currency validator")
		}

		if err := v.RegisterValidation("category", settlementdelivery.ValidCategory); err != nil {
			return nil, errors.New("cannot register category validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
