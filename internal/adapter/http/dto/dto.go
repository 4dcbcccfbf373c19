package dto

import (
	"time"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ---- Auth ----

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// ---- Users ----

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=254"`
}

type UserResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Wallet    WalletResponse `json:"wallet"`
	CreatedAt string         `json:"created_at"`
}

// ---- Wallet ----

// MoneyRequest is the counterparty form shared by every money movement.
// Bank is checked by the ledger so the client sees "Please select a bank".
type MoneyRequest struct {
	Bank          string          `json:"bank" binding:"omitempty,bank_name"`
	AccountName   string          `json:"account_name" binding:"max=100"`
	AccountNumber string          `json:"account_number" binding:"omitempty,account_number"`
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0,cents"`
	Details       string          `json:"details" binding:"max=500"`
}

// Counterparty converts the form into the ledger's counterparty.
func (r MoneyRequest) Counterparty() ports.Counterparty {
	return ports.Counterparty{
		Bank:          r.Bank,
		AccountName:   r.AccountName,
		AccountNumber: r.AccountNumber,
		Details:       r.Details,
	}
}

type CreateTransactionRequest struct {
	Type string `json:"type" binding:"required,oneof=deposit withdraw transfer"`
	MoneyRequest
}

type WalletResponse struct {
	Balance       string `json:"balance"`
	TotalEarned   string `json:"total_earned"`
	MoviesWatched int    `json:"movies_watched"`
}

type TransactionResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Type          string  `json:"type"`
	Bank          string  `json:"bank"`
	AccountName   string  `json:"account_name"`
	AccountNumber string  `json:"account_number"`
	Amount        string  `json:"amount"`
	Status        string  `json:"status"`
	Details       string  `json:"details"`
	MovieID       string  `json:"movie_id,omitempty"`
	Timestamp     string  `json:"timestamp"`
	ProcessedAt   *string `json:"processed_at"`
}

type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Total int                   `json:"total"`
}

type LedgerResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Wallet      WalletResponse      `json:"wallet"`
}

// ---- Dashboard ----

type TotalsResponse struct {
	Deposits     string `json:"deposits"`
	Withdrawals  string `json:"withdrawals"`
	Transfers    string `json:"transfers"`
	Earnings     string `json:"earnings"`
	Net          string `json:"net"`
	Transactions int    `json:"transactions"`
}

type DashboardResponse struct {
	User         UserResponse          `json:"user"`
	Transactions []TransactionResponse `json:"transactions"`
	Totals       TotalsResponse        `json:"totals"`
	Movies       []domain.Movie        `json:"movies"`
}

// ---- Devices ----

type DevicePingRequest struct {
	Owner string `json:"owner" binding:"max=100"`
}

type DeviceResponse struct {
	ID         string `json:"id"`
	IP         string `json:"ip"`
	DeviceName string `json:"device_name"`
	DeviceID   string `json:"device_id"`
	IMEI       string `json:"imei"`
	LastAccess string `json:"last_access"`
	Owner      string `json:"owner"`
}

// ---- Mapping ----

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ToWalletResponse(w domain.WalletAccount) WalletResponse {
	return WalletResponse{
		Balance:       money(w.Balance),
		TotalEarned:   money(w.TotalEarned),
		MoviesWatched: w.MoviesWatched,
	}
}

func ToTransactionResponse(tx *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            tx.ID.String(),
		UserID:        tx.UserID.String(),
		Type:          string(tx.Type),
		Bank:          tx.BankName(),
		AccountName:   tx.AccountName,
		AccountNumber: tx.AccountNumber,
		Amount:        money(tx.Amount),
		Status:        string(tx.Status),
		Details:       tx.Details,
		MovieID:       tx.MovieID,
		Timestamp:     formatTime(tx.Timestamp),
	}
	if tx.ProcessedAt != nil {
		s := formatTime(*tx.ProcessedAt)
		resp.ProcessedAt = &s
	}
	return resp
}

func ToTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	items := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		items = append(items, ToTransactionResponse(&txs[i]))
	}
	return items
}

func ToLedgerResponse(res *ports.LedgerResult) LedgerResponse {
	return LedgerResponse{
		Transaction: ToTransactionResponse(&res.Transaction),
		Wallet:      ToWalletResponse(res.Wallet),
	}
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Wallet:    ToWalletResponse(u.Wallet),
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func ToDashboardResponse(d *ports.Dashboard) DashboardResponse {
	return DashboardResponse{
		User:         ToUserResponse(&d.User),
		Transactions: ToTransactionResponses(d.Transactions),
		Totals: TotalsResponse{
			Deposits:     money(d.Totals.Deposits),
			Withdrawals:  money(d.Totals.Withdrawals),
			Transfers:    money(d.Totals.Transfers),
			Earnings:     money(d.Totals.Earnings),
			Net:          money(d.Totals.Net),
			Transactions: d.Totals.Transactions,
		},
		Movies: d.Movies,
	}
}

func ToDeviceResponse(d *domain.DeviceFingerprint) DeviceResponse {
	return DeviceResponse{
		ID:         d.ID.String(),
		IP:         d.IP,
		DeviceName: d.DeviceName,
		DeviceID:   d.DeviceID,
		IMEI:       d.IMEI,
		LastAccess: formatTime(d.LastAccess),
		Owner:      d.Owner,
	}
}
