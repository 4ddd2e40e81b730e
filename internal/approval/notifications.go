package approval

import (
	"fmt"

	"topup-admin-go/internal/models"

	"github.com/shopspring/decimal"
)

const DefaultNotificationTitle = "Notification"

func DepositApprovedNotification(userId string, amount decimal.Decimal) *models.Notification {
	return &models.Notification{
		UserId:   userId,
		Title:    "Deposit Approved",
		Body:     fmt.Sprintf("Your deposit of %s has been approved.", amount.String()),
		Category: models.CategoryDeposit,
	}
}

func PurchaseApprovedNotification(userId string) *models.Notification {
	return &models.Notification{
		UserId:   userId,
		Title:    "Purchase Approved",
		Body:     "Your purchase request has been approved. You can proceed.",
		Category: models.CategoryPurchase,
	}
}

// BalanceAddedNotification describes an increment; negative amounts read as a decrease.
func BalanceAddedNotification(userId string, amount decimal.Decimal) *models.Notification {
	body := fmt.Sprintf("Your balance increased by %s.", amount.String())
	if amount.IsNegative() {
		body = fmt.Sprintf("Your balance decreased by %s.", amount.Abs().String())
	}
	return &models.Notification{
		UserId:   userId,
		Title:    "Balance Updated",
		Body:     body,
		Category: models.CategoryBalance,
	}
}

func BalanceSetNotification(userId string, amount decimal.Decimal) *models.Notification {
	return &models.Notification{
		UserId:   userId,
		Title:    "Balance Updated",
		Body:     fmt.Sprintf("Your balance set to %s.", amount.String()),
		Category: models.CategoryBalance,
	}
}

// ManualNotification addresses userId, or every user when userId is empty.
func ManualNotification(userId, title, body string) *models.Notification {
	if title == "" {
		title = DefaultNotificationTitle
	}
	return &models.Notification{
		UserId:    userId,
		Broadcast: userId == "",
		Title:     title,
		Body:      body,
		Category:  models.CategoryManual,
	}
}
