// Package settlementdelivery manages the delivery layer of the settlement core.
package settlementdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/pkg/errorspkg"
	"github.com/payday-kr/settlement-core/pkg/moneypkg"
	"github.com/payday-kr/settlement-core/pkg/web"
)

// Service provides the facade interface needed by the delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package settlementdelivery
type Service interface {
	CreateAccount(ctx context.Context, id, currency string, opening int64) (domain.Account, error)
	Balance(ctx context.Context, accountID string) (domain.Balance, error)
	Stake(ctx context.Context, owner string, amount int64, criteriaRef, correlationID string) (domain.Commitment, error)
	ResolveCommitment(ctx context.Context, commitmentID string, outcome domain.Outcome) (domain.Commitment, error)
	ReleaseCommitment(ctx context.Context, commitmentID, correlationID string) (domain.ReleaseResult, error)
	OpenWager(ctx context.Context, stake int64, maxParticipants int32, poolRule domain.PoolRule, topPercent int32) (domain.Wager, error)
	EnterWager(ctx context.Context, wagerID, accountID, correlationID string) error
	LockWager(ctx context.Context, wagerID string) (domain.Wager, error)
	SettleWager(ctx context.Context, wagerID string, ranking []string, correlationID string) (domain.SettleResult, error)
	VoidWager(ctx context.Context, wagerID, correlationID string) error
	Purchase(ctx context.Context, buyer, payee string, category domain.Category, amount int64, correlationID string) (domain.PurchaseResult, error)
}

// Handler facilitates settlement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns a settlement handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

func bindError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx)

	var (
		ve     validator.ValidationErrors
		errMsg string
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	} else {
		errMsg = err.Error()
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}

func respondError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrUnknownAccount, domain.ErrCommitmentNotFound, domain.ErrWagerNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrAccountExists, domain.ErrDuplicateEntry, domain.ErrAlreadyResolved,
		domain.ErrAlreadyReleased, domain.ErrAlreadySettled, domain.ErrCannotVoid,
		domain.ErrWagerClosed, domain.ErrWagerFull, domain.ErrConflict:
		gctx.JSON(http.StatusConflict, web.Error(err))
	case domain.ErrOutOfBounds, domain.ErrInvalidRanking, domain.ErrInvalidCategory,
		domain.ErrSelfPurchase, domain.ErrNotResolved, domain.ErrNotLocked, moneypkg.ErrOverflow:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrInsufficientFunds:
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type createAccountRequest struct {
	ID             string `json:"id" binding:"required"`
	Currency       string `json:"currency" binding:"required,currency"`
	OpeningBalance int64  `json:"opening_balance" binding:"min=0"`
}

// CreateAccount handles the http request to create an account.
func (h *Handler) CreateAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createAccountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.CreateAccount(ctx, req.ID, req.Currency, req.OpeningBalance)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: account})
}

type accountURI struct {
	ID string `uri:"id" binding:"required"`
}

type balanceResponse struct {
	Available moneypkg.Money `json:"available"`
	Held      moneypkg.Money `json:"held"`
}

// Balance handles the http request to read an account balance.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req accountURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	balance, err := h.service.Balance(ctx, req.ID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceResponse{
		Available: moneypkg.New(balance.Available, balance.Currency),
		Held:      moneypkg.New(balance.Held, balance.Currency),
	}})
}

type stakeRequest struct {
	OwnerID       string `json:"owner_id" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,min=1"`
	CriteriaRef   string `json:"criteria_ref" binding:"required"`
	CorrelationID string `json:"correlation_id" binding:"required,uuid"`
}

// Stake handles the http request to stake on a habit commitment.
func (h *Handler) Stake(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req stakeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	commitment, err := h.service.Stake(ctx, req.OwnerID, req.Amount, req.CriteriaRef, req.CorrelationID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: commitment})
}

type commitmentURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type resolveRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=SUCCESS FAILURE"`
}

// ResolveCommitment handles the http request to report a commitment outcome.
func (h *Handler) ResolveCommitment(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri commitmentURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req resolveRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	commitment, err := h.service.ResolveCommitment(ctx, uri.ID, domain.Outcome(req.Outcome))
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: commitment})
}

type releaseRequest struct {
	CorrelationID string `json:"correlation_id" binding:"required,uuid"`
}

// ReleaseCommitment handles the http request to release a resolved commitment.
func (h *Handler) ReleaseCommitment(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri commitmentURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req releaseRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.ReleaseCommitment(ctx, uri.ID, req.CorrelationID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: result})
}

type openWagerRequest struct {
	Stake           int64  `json:"stake" binding:"required,min=1"`
	MaxParticipants int32  `json:"max_participants" binding:"required,min=2"`
	PoolRule        string `json:"pool_rule" binding:"required,oneof=HEAD_TO_HEAD TOP_PERCENTILE"`
	TopPercent      int32  `json:"top_percent" binding:"min=0,max=100"`
}

// OpenWager handles the http request to open a wager or pooled competition.
func (h *Handler) OpenWager(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req openWagerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	wager, err := h.service.OpenWager(ctx, req.Stake, req.MaxParticipants, domain.PoolRule(req.PoolRule), req.TopPercent)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: wager})
}

type wagerURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type enterWagerRequest struct {
	AccountID     string `json:"account_id" binding:"required"`
	CorrelationID string `json:"correlation_id" binding:"required,uuid"`
}

// EnterWager handles the http request to enter a wager.
func (h *Handler) EnterWager(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri wagerURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req enterWagerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	if err := h.service.EnterWager(ctx, uri.ID, req.AccountID, req.CorrelationID); err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"entered": true}})
}

// LockWager handles the http request to close a wager for entries.
func (h *Handler) LockWager(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri wagerURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	wager, err := h.service.LockWager(ctx, uri.ID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: wager})
}

type settleWagerRequest struct {
	Ranking       []string `json:"ranking" binding:"required,min=1"`
	CorrelationID string   `json:"correlation_id" binding:"required,uuid"`
}

// SettleWager handles the http request to settle a locked wager.
func (h *Handler) SettleWager(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri wagerURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req settleWagerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.SettleWager(ctx, uri.ID, req.Ranking, req.CorrelationID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: result})
}

type voidWagerRequest struct {
	CorrelationID string `json:"correlation_id" binding:"required,uuid"`
}

// VoidWager handles the http request to cancel an open wager.
func (h *Handler) VoidWager(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri wagerURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req voidWagerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	if err := h.service.VoidWager(ctx, uri.ID, req.CorrelationID); err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"voided": true}})
}

type purchaseRequest struct {
	BuyerID       string `json:"buyer_id" binding:"required"`
	PayeeID       string `json:"payee_id" binding:"required"`
	Category      string `json:"category" binding:"required,category"`
	Amount        int64  `json:"amount" binding:"required,min=1"`
	CorrelationID string `json:"correlation_id" binding:"required,uuid"`
}

// Purchase handles the http request to settle a direct payment.
func (h *Handler) Purchase(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req purchaseRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.Purchase(ctx, req.BuyerID, req.PayeeID, domain.Category(req.Category), req.Amount, req.CorrelationID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: result})
}
