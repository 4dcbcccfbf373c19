package handler

import (
	"errors"
	"net/http"

	"movie-wallet/internal/adapter/http/dto"
	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles balance and ledger endpoints for one user.
type WalletHandler struct {
	ledgerSvc   ports.LedgerService
	transferSvc ports.TransferService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService, transferSvc ports.TransferService) *WalletHandler {
	return &WalletHandler{
		ledgerSvc:   ledgerSvc,
		transferSvc: transferSvc,
	}
}

// uuidParam parses a path parameter, writing a validation error on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func bindMoney(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge(tooLarge.Limit))
			return false
		}
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(req)
	return true
}

// GetWallet handles GET /api/v1/users/:id/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	wallet, err := h.ledgerSvc.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(*wallet))
}

// ListTransactions handles GET /api/v1/users/:id/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	txs, err := h.ledgerSvc.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransactionListResponse{
		Items: dto.ToTransactionResponses(txs),
		Total: len(txs),
	})
}

// CreateTransaction handles POST /api/v1/users/:id/transactions, the
// wallet form that picks deposit, withdraw or transfer by type.
func (h *WalletHandler) CreateTransaction(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !bindMoney(c, &req) {
		return
	}

	txType := domain.TransactionType(req.Type)
	var (
		result *ports.LedgerResult
		err    error
	)
	if txType == domain.TransactionTypeDeposit {
		result, err = h.ledgerSvc.Credit(c.Request.Context(), ports.CreditRequest{
			UserID:       userID,
			Amount:       req.Amount,
			Counterparty: req.Counterparty(),
		})
	} else {
		result, err = h.ledgerSvc.Debit(c.Request.Context(), ports.DebitRequest{
			UserID:       userID,
			Type:         txType,
			Amount:       req.Amount,
			Counterparty: req.Counterparty(),
		})
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLedgerResponse(result))
}

// Deposit handles POST /api/v1/users/:id/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.MoneyRequest
	if !bindMoney(c, &req) {
		return
	}

	result, err := h.ledgerSvc.Credit(c.Request.Context(), ports.CreditRequest{
		UserID:       userID,
		Amount:       req.Amount,
		Counterparty: req.Counterparty(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLedgerResponse(result))
}

// Withdraw handles POST /api/v1/users/:id/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.MoneyRequest
	if !bindMoney(c, &req) {
		return
	}

	result, err := h.ledgerSvc.Debit(c.Request.Context(), ports.DebitRequest{
		UserID:       userID,
		Type:         domain.TransactionTypeWithdraw,
		Amount:       req.Amount,
		Counterparty: req.Counterparty(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLedgerResponse(result))
}

// WatchMovie handles POST /api/v1/users/:id/movies/:movieId/watch.
func (h *WalletHandler) WatchMovie(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.ledgerSvc.WatchMovie(c.Request.Context(), userID, c.Param("movieId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLedgerResponse(result))
}

// BankTransfer handles POST /api/v1/users/:id/bank-transfers. The
// transfer is accepted in processing state and settles later.
func (h *WalletHandler) BankTransfer(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.MoneyRequest
	if !bindMoney(c, &req) {
		return
	}

	result, err := h.transferSvc.BankTransfer(c.Request.Context(), ports.TransferRequest{
		UserID:       userID,
		Amount:       req.Amount,
		Counterparty: req.Counterparty(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, dto.ToLedgerResponse(result))
}

// GetTransaction handles GET /api/v1/transactions/:id.
func (h *WalletHandler) GetTransaction(c *gin.Context) {
	txID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	tx, err := h.ledgerSvc.GetTransaction(c.Request.Context(), txID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToTransactionResponse(tx))
}
