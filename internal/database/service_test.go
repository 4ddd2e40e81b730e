package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	service, err := newServiceFromDB(db, false)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func createTestUser(t *testing.T, service *Service, id, email string) {
	t.Helper()
	if _, err := service.CreateUser(context.Background(), id, "Test User", email); err != nil {
		t.Fatalf("Failed to create user %s: %v", id, err)
	}
}

func createTestRequest(t *testing.T, service *Service, kind models.RequestKind, userId, amount string) *models.Request {
	t.Helper()
	req, err := service.CreateRequest(context.Background(), store.CreateRequestParams{
		Kind:    kind,
		UserId:  userId,
		Amount:  decimal.RequireFromString(amount),
		Method:  "bkash",
		TxId:    "TX123",
		Service: "grameenphone",
		Phone:   "01700000000",
	})
	if err != nil {
		t.Fatalf("Failed to create %s request: %v", kind, err)
	}
	return req
}

func TestCreateUser_Duplicate(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	user, err := service.CreateUser(ctx, "user1", "Test User", "test@example.com")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if !user.Balance.IsZero() {
		t.Errorf("Expected zero balance for new user, got %s", user.Balance.String())
	}
	if user.Status != models.UserStatusActive || user.Role != "user" {
		t.Errorf("Expected active user role, got status=%s role=%s", user.Status, user.Role)
	}

	_, err = service.CreateUser(ctx, "user2", "Other User", "test@example.com")
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for duplicate email, got: %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.GetUserById(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound by id, got: %v", err)
	}
	if _, err := service.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound by email, got: %v", err)
	}
}

func TestGetAdmin(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	admin, err := service.GetAdmin(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetAdmin failed: %v", err)
	}
	if admin != nil {
		t.Errorf("Expected nil admin for missing record, got %+v", admin)
	}

	if err := service.UpsertAdmin(ctx, "admin1", "admin", true); err != nil {
		t.Fatalf("UpsertAdmin failed: %v", err)
	}
	if err := service.UpsertAdmin(ctx, "admin1", "admin", false); err != nil {
		t.Fatalf("UpsertAdmin update failed: %v", err)
	}

	admin, err = service.GetAdmin(ctx, "admin1")
	if err != nil {
		t.Fatalf("GetAdmin failed: %v", err)
	}
	if admin == nil || admin.Active {
		t.Errorf("Expected inactive admin record, got %+v", admin)
	}
}

func TestAdjustBalance_AddAndSet(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, "user1", "test@example.com")

	entry, err := service.AdjustBalance(ctx, store.BalanceAdjustmentParams{
		UserId:  "user1",
		Mode:    store.AdjustAdd,
		Amount:  decimal.NewFromInt(50),
		ActorId: "admin1",
		Notification: &models.Notification{
			Title:    "Balance Updated",
			Body:     "Your balance increased by 50.",
			Category: models.CategoryBalance,
		},
	})
	if err != nil {
		t.Fatalf("AdjustBalance add failed: %v", err)
	}
	if !entry.BalanceBefore.IsZero() || !entry.BalanceAfter.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected 0 -> 50, got %s -> %s", entry.BalanceBefore.String(), entry.BalanceAfter.String())
	}

	entry, err = service.AdjustBalance(ctx, store.BalanceAdjustmentParams{
		UserId:  "user1",
		Mode:    store.AdjustSet,
		Amount:  decimal.NewFromInt(20),
		ActorId: "admin1",
	})
	if err != nil {
		t.Fatalf("AdjustBalance set failed: %v", err)
	}
	if entry.EntryType != models.EntryTypeAdminSet {
		t.Errorf("Expected entry type %s, got %s", models.EntryTypeAdminSet, entry.EntryType)
	}
	// Set entries record the delta actually applied
	if !entry.Amount.Equal(decimal.NewFromInt(-30)) {
		t.Errorf("Expected delta -30, got %s", entry.Amount.String())
	}

	balance, err := service.GetUserBalance(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUserBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected balance 20, got %s", balance.String())
	}

	if err := service.ReconcileUserBalance(ctx, "user1"); err != nil {
		t.Errorf("Reconciliation failed: %v", err)
	}

	notifications, err := service.ListNotifications(ctx, "user1", 10)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].UserId != "user1" || notifications[0].Category != models.CategoryBalance {
		t.Errorf("Unexpected notification: %+v", notifications[0])
	}
}

func TestAdjustBalance_UnknownUser(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.AdjustBalance(context.Background(), store.BalanceAdjustmentParams{
		UserId: "ghost",
		Mode:   store.AdjustAdd,
		Amount: decimal.NewFromInt(10),
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestAdjustBalance_NegativeBalanceAllowed(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, "user1", "test@example.com")

	entry, err := service.AdjustBalance(ctx, store.BalanceAdjustmentParams{
		UserId: "user1",
		Mode:   store.AdjustAdd,
		Amount: decimal.NewFromInt(-15),
	})
	if err != nil {
		t.Fatalf("AdjustBalance failed: %v", err)
	}
	if !entry.BalanceAfter.Equal(decimal.NewFromInt(-15)) {
		t.Errorf("Expected balance -15, got %s", entry.BalanceAfter.String())
	}
}

func TestAdjustBalance_DuplicateReference(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, "user1", "test@example.com")

	params := store.BalanceAdjustmentParams{
		UserId:    "user1",
		Mode:      store.AdjustAdd,
		Amount:    decimal.NewFromInt(5),
		Reference: "ref-1",
	}
	if _, err := service.AdjustBalance(ctx, params); err != nil {
		t.Fatalf("First AdjustBalance failed: %v", err)
	}
	if _, err := service.AdjustBalance(ctx, params); !errors.Is(err, store.ErrDuplicateReference) {
		t.Errorf("Expected ErrDuplicateReference, got: %v", err)
	}

	balance, _ := service.GetUserBalance(ctx, "user1")
	if !balance.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected balance 5, got %s", balance.String())
	}
}

func TestCommitTransition_DepositApproval(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, "user1", "test@example.com")
	req := createTestRequest(t, service, models.RequestKindDeposit, "user1", "500")

	if !req.IsPending() || req.Method != "bkash" || req.TxId != "TX123" {
		t.Fatalf("Unexpected stored request: %+v", req)
	}

	now := time.Now().UTC()
	transition := &store.Transition{
		Kind:      models.RequestKindDeposit,
		RequestId: req.Id,
		UserId:    "user1",
		ToStatus:  models.RequestStatusApproved,
		DecidedAt: now,
		DecidedBy: "admin1",
		Credit:    &store.Credit{UserId: "user1", Amount: decimal.NewFromInt(500)},
		Notification: &models.Notification{
			Title:    "Deposit Approved",
			Body:     "Your deposit of 500 has been approved.",
			Category: models.CategoryDeposit,
		},
	}

	entry, err := service.CommitTransition(ctx, transition)
	if err != nil {
		t.Fatalf("CommitTransition failed: %v", err)
	}
	if entry == nil || !entry.BalanceAfter.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("Expected credited entry with balance 500, got %+v", entry)
	}
	if entry.Reference != req.Id {
		t.Errorf("Expected entry reference %s, got %s", req.Id, entry.Reference)
	}

	stored, err := service.GetRequest(ctx, models.RequestKindDeposit, req.Id)
	if err != nil {
		t.Fatalf("GetRequest failed: %v", err)
	}
	if stored.Status != models.RequestStatusApproved || stored.DecidedBy != "admin1" || stored.DecidedAt == nil {
		t.Errorf("Unexpected decided request: %+v", stored)
	}

	// Second commit must not credit again
	_, err = service.CommitTransition(ctx, transition)
	if !errors.Is(err, store.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on second commit, got: %v", err)
	}

	balance, _ := service.GetUserBalance(ctx, "user1")
	if !balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected balance 500 after duplicate commit, got %s", balance.String())
	}

	notifications, _ := service.ListNotifications(ctx, "user1", 10)
	if len(notifications) != 1 {
		t.Errorf("Expected exactly 1 notification, got %d", len(notifications))
	}
}

func TestCommitTransition_UnknownUserRollsBack(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	req := createTestRequest(t, service, models.RequestKindDeposit, "ghost", "100")

	_, err := service.CommitTransition(ctx, &store.Transition{
		Kind:      models.RequestKindDeposit,
		RequestId: req.Id,
		UserId:    "ghost",
		ToStatus:  models.RequestStatusApproved,
		DecidedAt: time.Now().UTC(),
		DecidedBy: "admin1",
		Credit:    &store.Credit{UserId: "ghost", Amount: decimal.NewFromInt(100)},
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got: %v", err)
	}

	stored, err := service.GetRequest(ctx, models.RequestKindDeposit, req.Id)
	if err != nil {
		t.Fatalf("GetRequest failed: %v", err)
	}
	if !stored.IsPending() {
		t.Errorf("Expected request to stay pending, got %s", stored.Status)
	}
}

func TestCommitTransition_PurchaseApproval(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, "user1", "test@example.com")
	req := createTestRequest(t, service, models.RequestKindPurchase, "user1", "120")

	if req.Service != "grameenphone" || req.Phone != "01700000000" {
		t.Fatalf("Unexpected stored purchase: %+v", req)
	}

	entry, err := service.CommitTransition(ctx, &store.Transition{
		Kind:             models.RequestKindPurchase,
		RequestId:        req.Id,
		UserId:           "user1",
		ToStatus:         models.RequestStatusApproved,
		DecidedAt:        time.Now().UTC(),
		DecidedBy:        "admin1",
		GrantEntitlement: true,
	})
	if err != nil {
		t.Fatalf("CommitTransition failed: %v", err)
	}
	if entry != nil {
		t.Errorf("Expected no ledger entry for purchase approval, got %+v", entry)
	}

	user, err := service.GetUserById(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUserById failed: %v", err)
	}
	if user.LastPurchaseApprovedAt == nil {
		t.Errorf("Expected purchase entitlement stamp")
	}
	if !user.Balance.IsZero() {
		t.Errorf("Expected balance untouched, got %s", user.Balance.String())
	}
}

func TestCommitTransition_NotFound(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.CommitTransition(context.Background(), &store.Transition{
		Kind:      models.RequestKindDeposit,
		RequestId: "missing",
		ToStatus:  models.RequestStatusRejected,
		DecidedAt: time.Now().UTC(),
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestListRequestsByStatus(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	createTestRequest(t, service, models.RequestKindDeposit, "user1", "10")
	createTestRequest(t, service, models.RequestKindDeposit, "user2", "20")
	createTestRequest(t, service, models.RequestKindPurchase, "user1", "30")

	deposits, err := service.ListRequestsByStatus(ctx, models.RequestKindDeposit, models.RequestStatusPending, 50)
	if err != nil {
		t.Fatalf("ListRequestsByStatus failed: %v", err)
	}
	if len(deposits) != 2 {
		t.Errorf("Expected 2 pending deposits, got %d", len(deposits))
	}

	limited, err := service.ListRequestsByStatus(ctx, models.RequestKindDeposit, models.RequestStatusPending, 1)
	if err != nil {
		t.Fatalf("ListRequestsByStatus failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected limit 1 to return 1 request, got %d", len(limited))
	}

	if _, err := service.ListRequestsByStatus(ctx, models.RequestKind("refund"), models.RequestStatusPending, 10); !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for unknown kind, got: %v", err)
	}
}

func TestNotifications_Broadcast(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	err := service.AppendNotification(ctx, &models.Notification{
		Broadcast: true,
		Title:     "Notification",
		Body:      "Service maintenance tonight",
		Category:  models.CategoryManual,
	})
	if err != nil {
		t.Fatalf("AppendNotification failed: %v", err)
	}
	err = service.AppendNotification(ctx, &models.Notification{
		UserId:   "user2",
		Title:    "Notification",
		Body:     "Only for user2",
		Category: models.CategoryManual,
	})
	if err != nil {
		t.Fatalf("AppendNotification failed: %v", err)
	}

	notifications, err := service.ListNotifications(ctx, "user1", 10)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 1 || !notifications[0].Broadcast {
		t.Errorf("Expected only the broadcast for user1, got %+v", notifications)
	}
}

func TestPaymentSettings(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	settings, err := service.GetPaymentSettings(ctx)
	if err != nil {
		t.Fatalf("GetPaymentSettings failed: %v", err)
	}
	if settings.Bkash != "" || settings.Nagad != "" || settings.Rocket != "" {
		t.Errorf("Expected empty settings, got %+v", settings)
	}

	if err := service.SavePaymentSettings(ctx, models.PaymentSettings{Bkash: "017", Nagad: "018"}); err != nil {
		t.Fatalf("SavePaymentSettings failed: %v", err)
	}
	if err := service.SavePaymentSettings(ctx, models.PaymentSettings{Bkash: "019", Nagad: "018", Rocket: "016"}); err != nil {
		t.Fatalf("SavePaymentSettings overwrite failed: %v", err)
	}

	settings, err = service.GetPaymentSettings(ctx)
	if err != nil {
		t.Fatalf("GetPaymentSettings failed: %v", err)
	}
	if settings.Bkash != "019" || settings.Rocket != "016" {
		t.Errorf("Unexpected settings after overwrite: %+v", settings)
	}
}

func TestGetLedgerHistory(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, "user1", "test@example.com")
	for _, amount := range []int64{50, -20} {
		_, err := service.AdjustBalance(ctx, store.BalanceAdjustmentParams{
			UserId: "user1",
			Mode:   store.AdjustAdd,
			Amount: decimal.NewFromInt(amount),
		})
		if err != nil {
			t.Fatalf("AdjustBalance failed: %v", err)
		}
	}

	entries, err := service.GetLedgerHistory(ctx, "user1", 10, 0)
	if err != nil {
		t.Fatalf("GetLedgerHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if err := service.ReconcileUserBalance(ctx, "user1"); err != nil {
		t.Errorf("Reconciliation failed: %v", err)
	}
}
