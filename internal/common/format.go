package common

import (
	"fmt"
	"strings"

	"topup-admin-go/internal/models"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintSeparatorNewline prints a separator with a newline before it
func PrintSeparatorNewline(char string, width int) {
	fmt.Println("\n" + strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// PrintBoxSeparator prints a box-drawing separator line (for sub-sections)
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// PrintUserLine prints one user as a box list item
func PrintUserLine(u UserInfo, isLast bool) {
	fmt.Printf("%s%s <%s> [%s]\n", BoxPrefix(isLast), u.Name, u.Email, u.Status)
	fmt.Printf("%s  id: %s  balance: %s\n", BoxDetailPrefix(isLast), u.Id, u.Balance.StringFixed(2))
}

// PrintRequestLine prints one deposit or purchase request as a box list item
func PrintRequestLine(r models.RequestRecord, isLast bool) {
	fmt.Printf("%s%s %s  %s  %s\n", BoxPrefix(isLast), r.Kind, r.Id, r.Amount.StringFixed(2), strings.ToUpper(r.Status))
	switch r.Kind {
	case models.RequestKindDeposit:
		fmt.Printf("%s  user: %s  method: %s  txid: %s\n", BoxDetailPrefix(isLast), r.UserId, r.Method, r.TxId)
	default:
		fmt.Printf("%s  user: %s  service: %s  phone: %s\n", BoxDetailPrefix(isLast), r.UserId, r.Service, r.Phone)
	}
	fmt.Printf("%s  created: %s\n", BoxDetailPrefix(isLast), r.CreatedAt.Format("2006-01-02 15:04:05"))
}
