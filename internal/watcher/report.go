package watcher

import (
	"fmt"
	"io"
	"sync"
	"time"

	"topup-admin-go/internal/models"
)

// ANSI color helpers for console output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// syncWriter serializes report lines from the per-kind poll goroutines
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func shortId(id string) string {
	if len(id) > 12 {
		return id[:12] + "..."
	}
	return id
}

func printRequest(out io.Writer, req models.Request) {
	switch req.Kind {
	case models.RequestKindDeposit:
		fmt.Fprintf(out, "  %s+ deposit  %s %s via %s (txid %s) | user %s%s\n",
			colorGreen, shortId(req.Id), req.Amount.String(), req.Method, req.TxId, shortId(req.UserId), colorReset)
	default:
		fmt.Fprintf(out, "  %s+ purchase %s %s for %s (%s) | user %s%s\n",
			colorYellow, shortId(req.Id), req.Amount.String(), req.Service, req.Phone, shortId(req.UserId), colorReset)
	}
}

func printFailure(out io.Writer, kind models.RequestKind, err error) {
	fmt.Fprintf(out, "  %s✗ %s: %s%s\n", colorRed, kind, err, colorReset)
}

func printSummary(out io.Writer, total int) {
	fmt.Fprintf(out, "%s[%s] %d new pending request(s)%s\n",
		colorCyan, time.Now().Format("15:04:05"), total, colorReset)
}
