package ports

import (
	"context"
	"time"

	"movie-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TokenService issues and validates admin session tokens.
type TokenService interface {
	Generate(principal domain.Principal) (string, time.Time, error)
	Validate(tokenString string) (*domain.Principal, error)
}

// Authenticator checks a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
}

// --- Service Ports (Business Logic) ---

// LedgerService owns wallet balances and the transaction log.
type LedgerService interface {
	Credit(ctx context.Context, req CreditRequest) (*LedgerResult, error)
	Debit(ctx context.Context, req DebitRequest) (*LedgerResult, error)
	WatchMovie(ctx context.Context, userID uuid.UUID, movieID string) (*LedgerResult, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*domain.WalletAccount, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
}

// Counterparty is the fictitious bank account on the other side.
type Counterparty struct {
	Bank          string
	AccountName   string
	AccountNumber string
	Details       string
}

// CreditRequest holds input for a deposit.
type CreditRequest struct {
	UserID uuid.UUID
	Amount decimal.Decimal
	Counterparty
}

// DebitRequest holds input for a withdraw or transfer.
type DebitRequest struct {
	UserID uuid.UUID
	Type   domain.TransactionType
	Amount decimal.Decimal
	Counterparty
}

// LedgerResult is the committed entry and the wallet after it.
type LedgerResult struct {
	Transaction domain.Transaction   `json:"transaction"`
	Wallet      domain.WalletAccount `json:"wallet"`
}

// TransferService simulates bank transfers that settle later.
type TransferService interface {
	BankTransfer(ctx context.Context, req TransferRequest) (*LedgerResult, error)
	Settle(ctx context.Context, txID uuid.UUID) (*domain.Transaction, error)
	ResumePending(ctx context.Context) (int, error)
}

// TransferRequest holds input for a bank transfer.
type TransferRequest struct {
	UserID uuid.UUID
	Amount decimal.Decimal
	Counterparty
}

// AuthService defines admin login.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
}

// Session is an issued admin session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Principal domain.Principal
}

// UserService manages wallet owners.
type UserService interface {
	Create(ctx context.Context, name, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// DeviceService records synthetic device fingerprints.
type DeviceService interface {
	Ping(ctx context.Context, req DevicePingRequest) (*domain.DeviceFingerprint, error)
	List(ctx context.Context) ([]domain.DeviceFingerprint, error)
}

// DevicePingRequest holds what the caller tells us about itself.
type DevicePingRequest struct {
	UserAgent string
	Owner     string
}

// CatalogService serves the movie wall.
type CatalogService interface {
	List() []domain.Movie
	Shuffle()
	Find(id string) (domain.Movie, bool)
}

// ReportingService builds the dashboard.
type ReportingService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

// Dashboard is everything the wallet page shows.
type Dashboard struct {
	User         domain.User          `json:"user"`
	Transactions []domain.Transaction `json:"transactions"`
	Totals       LedgerTotals         `json:"totals"`
	Movies       []domain.Movie       `json:"movies"`
}

// LedgerTotals sums completed and processing entries per type.
type LedgerTotals struct {
	Deposits     decimal.Decimal `json:"deposits"`
	Withdrawals  decimal.Decimal `json:"withdrawals"`
	Transfers    decimal.Decimal `json:"transfers"`
	Earnings     decimal.Decimal `json:"earnings"`
	Net          decimal.Decimal `json:"net"`
	Transactions int             `json:"transactions"`
}
