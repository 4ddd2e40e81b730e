package api

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"topup-admin-go/internal/database"
	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdmin = "admin-1"

func setupTestStore(t *testing.T) *database.Service {
	t.Helper()
	db, err := database.NewService(context.Background(), models.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.UpsertAdmin(context.Background(), testAdmin, "admin", true))
	return db
}

func setupConsole(t *testing.T, opts ...Option) (*ConsoleService, *database.Service) {
	t.Helper()
	db := setupTestStore(t)
	return NewConsoleService(db, opts...), db
}

func registerUser(t *testing.T, svc *ConsoleService, name, email string) *models.User {
	t.Helper()
	user, err := svc.RegisterUser(context.Background(), name, email)
	require.NoError(t, err)
	return user
}

func fileDeposit(t *testing.T, svc *ConsoleService, userKey, amount string) *models.RequestRecord {
	t.Helper()
	req, err := svc.SubmitRequest(context.Background(), SubmitRequestParams{
		Kind:      models.RequestKindDeposit,
		UserKey:   userKey,
		RawAmount: amount,
		Method:    "bkash",
		TxId:      "8N7A6D5F",
	})
	require.NoError(t, err)
	return req
}

// spyStore counts calls that must never happen before the admin gate passes.
type spyStore struct {
	store.ConsoleStore
	mu      sync.Mutex
	touched []string
}

func (s *spyStore) touch(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = append(s.touched, name)
}

func (s *spyStore) GetRequest(ctx context.Context, kind models.RequestKind, id string) (*models.Request, error) {
	s.touch("GetRequest")
	return s.ConsoleStore.GetRequest(ctx, kind, id)
}

func (s *spyStore) CommitTransition(ctx context.Context, t *store.Transition) (*models.LedgerEntry, error) {
	s.touch("CommitTransition")
	return s.ConsoleStore.CommitTransition(ctx, t)
}

func (s *spyStore) AdjustBalance(ctx context.Context, p store.BalanceAdjustmentParams) (*models.LedgerEntry, error) {
	s.touch("AdjustBalance")
	return s.ConsoleStore.AdjustBalance(ctx, p)
}

func (s *spyStore) GetUserById(ctx context.Context, id string) (*models.User, error) {
	s.touch("GetUserById")
	return s.ConsoleStore.GetUserById(ctx, id)
}

func (s *spyStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.touch("GetUserByEmail")
	return s.ConsoleStore.GetUserByEmail(ctx, email)
}

func (s *spyStore) GetUserBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	s.touch("GetUserBalance")
	return s.ConsoleStore.GetUserBalance(ctx, id)
}

type recordingMirror struct {
	mu        sync.Mutex
	movements []store.MovementParams
	err       error
}

func (m *recordingMirror) RecordMovement(_ context.Context, p store.MovementParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements = append(m.movements, p)
	return m.err
}

func (m *recordingMirror) GetBalance(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func TestApproveDeposit_NewUser(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	user := registerUser(t, svc, "Rahim Uddin", "rahim@example.com")
	req := fileDeposit(t, svc, user.Email, "500")

	result, err := svc.Approve(ctx, testAdmin, models.RequestKindDeposit, req.Id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, result.Status)
	assert.True(t, result.Credited.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, result.NewBalance)
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(500)))

	stored, err := db.GetRequest(ctx, models.RequestKindDeposit, req.Id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, stored.Status)
	assert.Equal(t, testAdmin, stored.DecidedBy)

	notifications, err := db.ListNotifications(ctx, user.Id, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.CategoryDeposit, notifications[0].Category)
	assert.Equal(t, "Your deposit of 500 has been approved.", notifications[0].Body)
}

func TestApproveDeposit_Twice(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	user := registerUser(t, svc, "Rahim Uddin", "rahim@example.com")
	req := fileDeposit(t, svc, user.Id, "250")

	_, err := svc.Approve(ctx, testAdmin, models.RequestKindDeposit, req.Id)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, testAdmin, models.RequestKindDeposit, req.Id)
	assert.ErrorIs(t, err, store.ErrInvalidState)

	balance, err := db.GetUserBalance(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(250)), "balance %s", balance)

	notifications, err := db.ListNotifications(ctx, user.Id, 10)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestApproveDeposit_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	user := registerUser(t, svc, "Rahim Uddin", "rahim@example.com")
	req := fileDeposit(t, svc, user.Id, "100")

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(ctx, testAdmin, models.RequestKindDeposit, req.Id)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, store.ErrInvalidState)
	}
	assert.Equal(t, 1, succeeded)

	balance, err := db.GetUserBalance(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)), "balance %s", balance)
}

// The in-memory store runs on a single connection, so this variant uses a file
// database with a real pool to let approvers write in parallel.
func TestApproveDeposit_ParallelWriters(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewService(ctx, models.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "console.db"),
		MaxOpenConns: 8,
		MaxIdleConns: 8,
		PingTimeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.UpsertAdmin(ctx, testAdmin, "admin", true))

	svc := NewConsoleService(db)
	user := registerUser(t, svc, "Rahim Uddin", "rahim@example.com")

	const rounds, approvers = 10, 8
	for round := 0; round < rounds; round++ {
		req := fileDeposit(t, svc, user.Id, "100")

		var wg sync.WaitGroup
		errs := make([]error, approvers)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Approve(ctx, testAdmin, models.RequestKindDeposit, req.Id)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, store.ErrInvalidState)
		}
		assert.Equal(t, 1, succeeded, "round %d", round)
	}

	balance, err := db.GetUserBalance(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100*rounds)), "balance %s", balance)
	assert.NoError(t, db.ReconcileUserBalance(ctx, user.Id))
}

func TestDecidedRequestsAreTerminal(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	user := registerUser(t, svc, "Rahim Uddin", "rahim@example.com")

	approved := fileDeposit(t, svc, user.Id, "40")
	_, err := svc.Approve(ctx, testAdmin, models.RequestKindDeposit, approved.Id)
	require.NoError(t, err)
	_, err = svc.Reject(ctx, testAdmin, models.RequestKindDeposit, approved.Id)
	assert.ErrorIs(t, err, store.ErrInvalidState)

	rejected := fileDeposit(t, svc, user.Id, "60")
	_, err = svc.Reject(ctx, testAdmin, models.RequestKindDeposit, rejected.Id)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, testAdmin, models.RequestKindDeposit, rejected.Id)
	assert.ErrorIs(t, err, store.ErrInvalidState)

	stored, err := db.GetRequest(ctx, models.RequestKindDeposit, rejected.Id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, stored.Status)

	balance, err := db.GetUserBalance(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(40)), "balance %s", balance)

	// Reject is silent: only the approval notified
	notifications, err := db.ListNotifications(ctx, user.Id, 10)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestApprovePurchase_StampsEntitlement(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	user := registerUser(t, svc, "Nusrat Jahan", "nusrat@example.com")

	req, err := svc.SubmitRequest(ctx, SubmitRequestParams{
		Kind:      models.RequestKindPurchase,
		UserKey:   user.Id,
		RawAmount: "99",
		Service:   "grameenphone",
		Phone:     "01711111111",
	})
	require.NoError(t, err)

	result, err := svc.Approve(ctx, testAdmin, models.RequestKindPurchase, req.Id)
	require.NoError(t, err)
	assert.True(t, result.Credited.IsZero())
	assert.Nil(t, result.NewBalance)

	stored, err := db.GetUserById(ctx, user.Id)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastPurchaseApprovedAt)
	assert.True(t, stored.Balance.IsZero())

	notifications, err := db.ListNotifications(ctx, user.Id, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.CategoryPurchase, notifications[0].Category)
}

func TestApprove_UnknownRequest(t *testing.T) {
	svc, _ := setupConsole(t)

	_, err := svc.Approve(context.Background(), testAdmin, models.RequestKindDeposit, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Approve(context.Background(), testAdmin, models.RequestKind("refund"), "r1")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestNonAdmin_RejectedBeforeStores(t *testing.T) {
	ctx := context.Background()
	db := setupTestStore(t)
	seed := NewConsoleService(db)
	user := registerUser(t, seed, "Rahim Uddin", "rahim@example.com")
	req := fileDeposit(t, seed, user.Id, "500")
	require.NoError(t, db.UpsertAdmin(ctx, "former-admin", "admin", false))

	spy := &spyStore{ConsoleStore: db}
	svc := NewConsoleService(spy)

	for _, actor := range []string{user.Id, "former-admin", ""} {
		_, err := svc.Approve(ctx, actor, models.RequestKindDeposit, req.Id)
		assert.ErrorIs(t, err, store.ErrUnauthorized)
		_, err = svc.AddBalance(ctx, actor, user.Id, "50")
		assert.ErrorIs(t, err, store.ErrUnauthorized)
		_, err = svc.CheckBalance(ctx, actor, user.Id)
		assert.ErrorIs(t, err, store.ErrUnauthorized)
		_, err = svc.SendNotification(ctx, actor, user.Id, "", "hello")
		assert.ErrorIs(t, err, store.ErrUnauthorized)
	}
	assert.Empty(t, spy.touched)

	stored, err := db.GetRequest(ctx, models.RequestKindDeposit, req.Id)
	require.NoError(t, err)
	assert.True(t, stored.IsPending())
}

func TestAddBalance_Sequence(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	alice := registerUser(t, svc, "Alice", "alice@example.com")
	bob := registerUser(t, svc, "Bob", "bob@example.com")

	_, err := svc.SetBalance(ctx, testAdmin, alice.Id, "100")
	require.NoError(t, err)

	_, err = svc.AddBalance(ctx, testAdmin, alice.Email, "50")
	require.NoError(t, err)
	_, err = svc.AddBalance(ctx, testAdmin, bob.Id, "7")
	require.NoError(t, err)
	result, err := svc.AddBalance(ctx, testAdmin, alice.Id, "-20")
	require.NoError(t, err)

	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(130)), "balance %s", result.NewBalance)
	assert.Equal(t, alice.Id, result.UserId)

	bobBalance, err := db.GetUserBalance(ctx, bob.Id)
	require.NoError(t, err)
	assert.True(t, bobBalance.Equal(decimal.NewFromInt(7)))

	notifications, err := db.ListNotifications(ctx, alice.Id, 10)
	require.NoError(t, err)
	assert.Len(t, notifications, 3)
	bodies := make([]string, 0, len(notifications))
	for _, n := range notifications {
		assert.Equal(t, models.CategoryBalance, n.Category)
		assert.Equal(t, "Balance Updated", n.Title)
		bodies = append(bodies, n.Body)
	}
	assert.Contains(t, bodies, "Your balance decreased by 20.")
	assert.NoError(t, db.ReconcileUserBalance(ctx, alice.Id))
}

func TestSetBalance_Messages(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	user := registerUser(t, svc, "Alice", "alice@example.com")

	result, err := svc.SetBalance(ctx, testAdmin, user.Id, "1,000")
	require.NoError(t, err)
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(1000)))

	notifications, err := db.ListNotifications(ctx, user.Id, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Your balance set to 1000.", notifications[0].Body)
}

func TestSetBalance_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	db := setupTestStore(t)
	seed := NewConsoleService(db)
	user := registerUser(t, seed, "Alice", "alice@example.com")

	spy := &spyStore{ConsoleStore: db}
	svc := NewConsoleService(spy)

	for _, raw := range []string{"abc", "", "  ", "1.2.3", "-"} {
		_, err := svc.SetBalance(ctx, testAdmin, user.Id, raw)
		assert.ErrorIs(t, err, store.ErrInvalidInput, "amount %q", raw)
	}
	assert.Empty(t, spy.touched)

	entries, err := db.GetLedgerHistory(ctx, user.Id, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	notifications, err := db.ListNotifications(ctx, user.Id, 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCheckBalance_WritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	user := registerUser(t, svc, "Alice", "alice@example.com")

	result, err := svc.CheckBalance(ctx, testAdmin, user.Email)
	require.NoError(t, err)
	assert.True(t, result.NewBalance.IsZero())
	assert.Equal(t, user.Id, result.UserId)

	notifications, err := db.ListNotifications(ctx, user.Id, 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestResolveUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConsole(t)
	user := registerUser(t, svc, "Alice", "alice@example.com")

	byEmail, err := svc.ResolveUser(ctx, " alice@example.com ")
	require.NoError(t, err)
	byId, err := svc.ResolveUser(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, byEmail.Id, byId.Id)

	_, err = svc.ResolveUser(ctx, "")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
	_, err = svc.ResolveUser(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.ResolveUser(ctx, "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegisterUser_Validation(t *testing.T) {
	svc, _ := setupConsole(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		user  string
		email string
	}{
		{name: "short name", user: "A", email: "a@example.com"},
		{name: "empty name", user: " ", email: "a@example.com"},
		{name: "bad email", user: "Alice", email: "alice.example.com"},
		{name: "empty email", user: "Alice", email: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterUser(ctx, tc.user, tc.email)
			assert.ErrorIs(t, err, store.ErrInvalidInput)
		})
	}

	registerUser(t, svc, "Alice", "alice@example.com")
	_, err := svc.RegisterUser(ctx, "Alice Again", "alice@example.com")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestListPending_Limits(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConsole(t, WithPageLimits(2, 3))
	user := registerUser(t, svc, "Alice", "alice@example.com")
	for i := 0; i < 4; i++ {
		fileDeposit(t, svc, user.Id, "10")
	}

	records, err := svc.ListPending(ctx, testAdmin, models.RequestKindDeposit, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = svc.ListPending(ctx, testAdmin, models.RequestKindDeposit, 100)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = svc.ListPending(ctx, testAdmin, models.RequestKindPurchase, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSendNotification(t *testing.T) {
	ctx := context.Background()
	svc, db := setupConsole(t)
	alice := registerUser(t, svc, "Alice", "alice@example.com")
	bob := registerUser(t, svc, "Bob", "bob@example.com")

	_, err := svc.SendNotification(ctx, testAdmin, alice.Email, "", "   ")
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	n, err := svc.SendNotification(ctx, testAdmin, alice.Email, "", "Your top-up is delayed")
	require.NoError(t, err)
	assert.Equal(t, "Notification", n.Title)
	assert.Equal(t, alice.Id, n.UserId)

	n, err = svc.SendNotification(ctx, testAdmin, "", "Maintenance", "Back at 10pm")
	require.NoError(t, err)
	assert.True(t, n.Broadcast)

	aliceInbox, err := db.ListNotifications(ctx, alice.Id, 10)
	require.NoError(t, err)
	assert.Len(t, aliceInbox, 2)

	bobInbox, err := db.ListNotifications(ctx, bob.Id, 10)
	require.NoError(t, err)
	require.Len(t, bobInbox, 1)
	assert.True(t, bobInbox[0].Broadcast)
}

func TestPaymentSettings(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConsole(t)

	require.NoError(t, svc.SavePaymentSettings(ctx, testAdmin, models.PaymentSettings{
		Bkash: " 01700000000 ",
		Nagad: "01800000000",
	}))

	settings, err := svc.LoadPaymentSettings(ctx, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, "01700000000", settings.Bkash)
	assert.Equal(t, "01800000000", settings.Nagad)
	assert.Empty(t, settings.Rocket)

	err = svc.SavePaymentSettings(ctx, "someone", models.PaymentSettings{})
	assert.ErrorIs(t, err, store.ErrUnauthorized)
}

func TestSubmitRequest_Catalog(t *testing.T) {
	ctx := context.Background()
	catalog := &models.Catalog{
		PaymentMethods: []models.CatalogEntry{{Id: "bkash", Name: "bKash"}},
		Services:       []models.CatalogEntry{{Id: "robi", Name: "Robi"}},
	}
	svc, _ := setupConsole(t, WithCatalog(catalog))
	user := registerUser(t, svc, "Alice", "alice@example.com")

	_, err := svc.SubmitRequest(ctx, SubmitRequestParams{
		Kind: models.RequestKindDeposit, UserKey: user.Id, RawAmount: "10", Method: "paypal", TxId: "X1",
	})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = svc.SubmitRequest(ctx, SubmitRequestParams{
		Kind: models.RequestKindDeposit, UserKey: user.Id, RawAmount: "0", Method: "bkash", TxId: "X1",
	})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	req, err := svc.SubmitRequest(ctx, SubmitRequestParams{
		Kind: models.RequestKindPurchase, UserKey: user.Email, RawAmount: "৳49", Service: "Robi", Phone: "018",
	})
	require.NoError(t, err)
	assert.True(t, req.Amount.Equal(decimal.NewFromInt(49)))
	assert.Equal(t, models.RequestStatusPending, req.Status)
}

func TestMirror_ReceivesMovements(t *testing.T) {
	ctx := context.Background()
	mirror := &recordingMirror{}
	svc, _ := setupConsole(t, WithMirror(mirror))
	user := registerUser(t, svc, "Alice", "alice@example.com")

	_, err := svc.SetBalance(ctx, testAdmin, user.Id, "80")
	require.NoError(t, err)
	_, err = svc.SetBalance(ctx, testAdmin, user.Id, "30")
	require.NoError(t, err)
	req := fileDeposit(t, svc, user.Id, "20")
	_, err = svc.Approve(ctx, testAdmin, models.RequestKindDeposit, req.Id)
	require.NoError(t, err)

	require.Len(t, mirror.movements, 3)
	assert.True(t, mirror.movements[1].Amount.Equal(decimal.NewFromInt(-50)))
	assert.Equal(t, models.EntryTypeDepositApproved, mirror.movements[2].EntryType)
	assert.Equal(t, req.Id, mirror.movements[2].Reference)
}

func TestMirror_FailureDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	mirror := &recordingMirror{err: errors.New("stack unavailable")}
	svc, db := setupConsole(t, WithMirror(mirror))
	user := registerUser(t, svc, "Alice", "alice@example.com")

	_, err := svc.AddBalance(ctx, testAdmin, user.Id, "15")
	require.NoError(t, err)

	balance, err := db.GetUserBalance(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(15)))
	assert.Len(t, mirror.movements, 1)
}

func TestGrantAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConsole(t)
	user := registerUser(t, svc, "Alice", "alice@example.com")

	ok, err := svc.Gate().IsAdmin(ctx, user.Id)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.GrantAdmin(ctx, user.Email, "", true)
	require.NoError(t, err)

	ok, err = svc.Gate().IsAdmin(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		raw     string
		expect  string
		invalid bool
	}{
		{raw: "500", expect: "500"},
		{raw: "1,000", expect: "1000"},
		{raw: "৳500", expect: "500"},
		{raw: " -20 ", expect: "-20"},
		{raw: "12.50 BDT", expect: "12.5"},
		{raw: "abc", invalid: true},
		{raw: "", invalid: true},
		{raw: "1.2.3", invalid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			amount, err := ParseAmount(tc.raw)
			if tc.invalid {
				assert.ErrorIs(t, err, store.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tc.expect)), "got %s", amount)
		})
	}
}
