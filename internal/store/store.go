package store

import (
	"context"
	"errors"
	"time"

	"topup-admin-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations and surfaced
// verbatim to the operator. Callers compare with errors.Is.
var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrNotFound               = errors.New("not found")
	ErrInvalidState           = errors.New("invalid state")
	ErrInvalidInput           = errors.New("invalid input")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrDuplicateReference     = errors.New("duplicate reference")
)

// AdjustMode selects how AdjustBalance applies its amount.
type AdjustMode int

const (
	// AdjustAdd increments the balance by the (possibly negative) amount.
	AdjustAdd AdjustMode = iota
	// AdjustSet overwrites the balance with the amount.
	AdjustSet
)

func (m AdjustMode) String() string {
	if m == AdjustSet {
		return "set"
	}
	return "add"
}

// Credit is a balance increment produced by an approved deposit.
type Credit struct {
	UserId string
	Amount decimal.Decimal
}

// Transition is the full, declared effect of deciding one pending request.
// Backends apply it as a single unit: either every part is persisted or none is.
type Transition struct {
	Kind      models.RequestKind
	RequestId string
	UserId    string
	ToStatus  string
	DecidedAt time.Time
	DecidedBy string

	// Credit is set only for approved deposits.
	Credit *Credit

	// GrantEntitlement stamps the user's last approved purchase (purchase approvals).
	GrantEntitlement bool

	// Notification is written to the owning user alongside the transition, when set.
	Notification *models.Notification
}

// BalanceAdjustmentParams contains the parameters for a direct admin balance change.
type BalanceAdjustmentParams struct {
	UserId       string
	Mode         AdjustMode
	Amount       decimal.Decimal
	ActorId      string
	Reference    string
	Notification *models.Notification
}

// CreateRequestParams contains the parameters for filing a deposit or purchase request.
type CreateRequestParams struct {
	Kind    models.RequestKind
	UserId  string
	Amount  decimal.Decimal
	Method  string
	TxId    string
	Service string
	Phone   string
}

// MovementParams describes a committed balance movement to be mirrored.
// Amount is the signed delta actually applied to the balance.
type MovementParams struct {
	Reference  string
	UserId     string
	EntryType  string
	Amount     decimal.Decimal
	ActorId    string
	OccurredAt time.Time
}

// ConsoleStore defines the contract the backing datastore must satisfy.
type ConsoleStore interface {
	// --- Users ---
	GetUsers(ctx context.Context, limit int) ([]models.User, error)
	GetUserById(ctx context.Context, userId string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, userId, name, email string) (*models.User, error)

	// --- Admins ---
	// GetAdmin returns nil, nil when no flag record exists.
	GetAdmin(ctx context.Context, userId string) (*models.Admin, error)
	UpsertAdmin(ctx context.Context, userId, role string, active bool) error

	// --- Balances ---
	GetUserBalance(ctx context.Context, userId string) (decimal.Decimal, error)
	AdjustBalance(ctx context.Context, params BalanceAdjustmentParams) (*models.LedgerEntry, error)
	GetLedgerHistory(ctx context.Context, userId string, limit, offset int) ([]models.LedgerEntry, error)
	ReconcileUserBalance(ctx context.Context, userId string) error

	// --- Requests ---
	CreateRequest(ctx context.Context, params CreateRequestParams) (*models.Request, error)
	GetRequest(ctx context.Context, kind models.RequestKind, requestId string) (*models.Request, error)
	ListRequestsByStatus(ctx context.Context, kind models.RequestKind, status string, limit int) ([]models.Request, error)
	// CommitTransition applies t only if the request is still pending and
	// returns ErrInvalidState otherwise. The ledger entry is nil unless t credits.
	CommitTransition(ctx context.Context, t *Transition) (*models.LedgerEntry, error)

	// --- Notifications ---
	AppendNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userId string, limit int) ([]models.Notification, error)

	// --- Settings ---
	GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error)
	SavePaymentSettings(ctx context.Context, settings models.PaymentSettings) error

	// --- Lifecycle ---
	Close()
}

// LedgerMirror receives a copy of every committed balance movement.
type LedgerMirror interface {
	RecordMovement(ctx context.Context, params MovementParams) error
	GetBalance(ctx context.Context, userId string) (decimal.Decimal, error)
}
