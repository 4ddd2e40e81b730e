package approval

import (
	"testing"
	"time"

	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest(kind models.RequestKind, amount string) *models.Request {
	return &models.Request{
		Id:     "r1",
		Kind:   kind,
		UserId: "u1",
		Amount: decimal.RequireFromString(amount),
		Status: models.RequestStatusPending,
	}
}

func TestDecide_ApproveDeposit(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tr, err := Decide(pendingRequest(models.RequestKindDeposit, "500"), ActionApprove, "admin1", now)
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusApproved, tr.ToStatus)
	assert.Equal(t, now, tr.DecidedAt)
	assert.Equal(t, "admin1", tr.DecidedBy)
	require.NotNil(t, tr.Credit)
	assert.Equal(t, "u1", tr.Credit.UserId)
	assert.True(t, tr.Credit.Amount.Equal(decimal.NewFromInt(500)))
	assert.False(t, tr.GrantEntitlement)
	require.NotNil(t, tr.Notification)
	assert.Equal(t, "Deposit Approved", tr.Notification.Title)
	assert.Equal(t, "Your deposit of 500 has been approved.", tr.Notification.Body)
	assert.Equal(t, models.CategoryDeposit, tr.Notification.Category)
}

func TestDecide_ApprovePurchase(t *testing.T) {
	tr, err := Decide(pendingRequest(models.RequestKindPurchase, "120"), ActionApprove, "admin1", time.Now())
	require.NoError(t, err)

	assert.Nil(t, tr.Credit)
	assert.True(t, tr.GrantEntitlement)
	require.NotNil(t, tr.Notification)
	assert.Equal(t, "Purchase Approved", tr.Notification.Title)
	assert.Equal(t, "Your purchase request has been approved. You can proceed.", tr.Notification.Body)
	assert.Equal(t, models.CategoryPurchase, tr.Notification.Category)
}

func TestDecide_RejectIsSilent(t *testing.T) {
	for _, kind := range []models.RequestKind{models.RequestKindDeposit, models.RequestKindPurchase} {
		t.Run(string(kind), func(t *testing.T) {
			tr, err := Decide(pendingRequest(kind, "10"), ActionReject, "admin1", time.Now())
			require.NoError(t, err)
			assert.Equal(t, models.RequestStatusRejected, tr.ToStatus)
			assert.Nil(t, tr.Credit)
			assert.Nil(t, tr.Notification)
			assert.False(t, tr.GrantEntitlement)
		})
	}
}

func TestDecide_Errors(t *testing.T) {
	decided := pendingRequest(models.RequestKindDeposit, "10")
	decided.Status = models.RequestStatusApproved

	noOwner := pendingRequest(models.RequestKindDeposit, "10")
	noOwner.UserId = ""

	testCases := []struct {
		name   string
		req    *models.Request
		action Action
		expect error
	}{
		{name: "missing request", req: nil, action: ActionApprove, expect: store.ErrNotFound},
		{name: "already decided approve", req: decided, action: ActionApprove, expect: store.ErrInvalidState},
		{name: "already decided reject", req: decided, action: ActionReject, expect: store.ErrInvalidState},
		{name: "zero deposit", req: pendingRequest(models.RequestKindDeposit, "0"), action: ActionApprove, expect: store.ErrInvalidInput},
		{name: "negative deposit", req: pendingRequest(models.RequestKindDeposit, "-5"), action: ActionApprove, expect: store.ErrInvalidInput},
		{name: "deposit without owner", req: noOwner, action: ActionApprove, expect: store.ErrInvalidInput},
		{name: "unknown action", req: pendingRequest(models.RequestKindPurchase, "1"), action: Action("escalate"), expect: store.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := Decide(tc.req, tc.action, "admin1", time.Now())
			assert.Nil(t, tr)
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestParseAction(t *testing.T) {
	action, err := ParseAction(" Approve ")
	assert.NoError(t, err)
	assert.Equal(t, ActionApprove, action)

	action, err = ParseAction("REJECT")
	assert.NoError(t, err)
	assert.Equal(t, ActionReject, action)

	_, err = ParseAction("hold")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestManualNotification(t *testing.T) {
	n := ManualNotification("", "", "Maintenance tonight")
	assert.True(t, n.Broadcast)
	assert.Equal(t, DefaultNotificationTitle, n.Title)

	n = ManualNotification("u1", "Hello", "Body")
	assert.False(t, n.Broadcast)
	assert.Equal(t, "u1", n.UserId)
	assert.Equal(t, models.CategoryManual, n.Category)
}

func TestBalanceAddedNotification(t *testing.T) {
	testCases := []struct {
		amount string
		body   string
	}{
		{"50", "Your balance increased by 50."},
		{"-20", "Your balance decreased by 20."},
		{"0", "Your balance increased by 0."},
	}
	for _, tc := range testCases {
		t.Run(tc.amount, func(t *testing.T) {
			n := BalanceAddedNotification("u1", decimal.RequireFromString(tc.amount))
			assert.Equal(t, tc.body, n.Body)
			assert.Equal(t, models.CategoryBalance, n.Category)
			assert.Equal(t, "u1", n.UserId)
		})
	}
}
