/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package watcher

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"topup-admin-go/internal/models"

	"go.uber.org/zap"
)

const defaultBatchSize = 200

// RequestSource is the read side of the store the watcher polls
type RequestSource interface {
	ListRequestsByStatus(ctx context.Context, kind models.RequestKind, status string, limit int) ([]models.Request, error)
}

// Config contains configuration for PendingWatcher
type Config struct {
	Source          RequestSource
	PollingInterval time.Duration
	CleanupInterval time.Duration
	SeenRetention   time.Duration
	BatchSize       int

	// OnPending is called once for every request the watcher has not seen before
	OnPending func(models.Request)

	// Output receives the console report. Defaults to stdout.
	Output io.Writer
}

// PendingWatcher polls both request tables and surfaces newly pending requests
// to the operator
type PendingWatcher struct {
	source    RequestSource
	onPending func(models.Request)
	out       io.Writer

	seen            map[string]time.Time
	mutex           sync.Mutex
	pollingInterval time.Duration
	cleanupInterval time.Duration
	seenRetention   time.Duration
	batchSize       int

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// NewPendingWatcher creates a new watcher
func NewPendingWatcher(cfg Config) *PendingWatcher {
	w := &PendingWatcher{
		source:          cfg.Source,
		onPending:       cfg.OnPending,
		out:             cfg.Output,
		seen:            make(map[string]time.Time),
		pollingInterval: cfg.PollingInterval,
		cleanupInterval: cfg.CleanupInterval,
		seenRetention:   cfg.SeenRetention,
		batchSize:       cfg.BatchSize,
		stopChan:        make(chan struct{}),
		doneChan:        make(chan struct{}),
	}
	if w.out == nil {
		w.out = os.Stdout
	}
	w.out = &syncWriter{w: w.out}
	if w.pollingInterval <= 0 {
		w.pollingInterval = 10 * time.Second
	}
	if w.cleanupInterval <= 0 {
		w.cleanupInterval = 10 * time.Minute
	}
	if w.seenRetention <= 0 {
		w.seenRetention = 24 * time.Hour
	}
	if w.batchSize <= 0 {
		w.batchSize = defaultBatchSize
	}
	return w
}

// Start runs the poll and cleanup loops until Stop is called or ctx ends
func (w *PendingWatcher) Start(ctx context.Context) {
	zap.L().Info("Starting pending request watcher",
		zap.Duration("polling_interval", w.pollingInterval),
		zap.Duration("seen_retention", w.seenRetention))

	go w.pollLoop(ctx)
	go w.cleanupLoop(ctx)
}

// Stop gracefully stops the watcher
func (w *PendingWatcher) Stop() {
	w.stopOnce.Do(func() {
		zap.L().Info("Stopping pending request watcher")
		close(w.stopChan)
	})
	<-w.doneChan
	zap.L().Info("Pending request watcher stopped")
}

// Done is closed once the poll loop has exited
func (w *PendingWatcher) Done() <-chan struct{} {
	return w.doneChan
}

func (w *PendingWatcher) pollLoop(ctx context.Context) {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.pollingInterval)
	defer ticker.Stop()

	w.Poll(ctx)

	for {
		select {
		case <-ticker.C:
			w.Poll(ctx)
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Poll checks both request tables once and returns how many new pending
// requests were surfaced
func (w *PendingWatcher) Poll(ctx context.Context) int {
	kinds := []models.RequestKind{models.RequestKindDeposit, models.RequestKindPurchase}

	var wg sync.WaitGroup
	counts := make([]int, len(kinds))
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind models.RequestKind) {
			defer wg.Done()
			n, err := w.pollKind(ctx, kind)
			if err != nil {
				printFailure(w.out, kind, err)
				zap.L().Error("Failed to poll pending requests",
					zap.String("kind", string(kind)),
					zap.Error(err))
				return
			}
			counts[i] = n
		}(i, kind)
	}
	wg.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	if total > 0 {
		printSummary(w.out, total)
	}
	return total
}

func (w *PendingWatcher) pollKind(ctx context.Context, kind models.RequestKind) (int, error) {
	requests, err := w.source.ListRequestsByStatus(ctx, kind, models.RequestStatusPending, w.batchSize)
	if err != nil {
		return 0, err
	}

	newCount := 0
	for _, req := range requests {
		if !w.markSeen(req.Id) {
			continue
		}
		newCount++
		printRequest(w.out, req)
		if w.onPending != nil {
			w.onPending(req)
		}
	}

	if newCount == 0 && len(requests) > 0 {
		zap.L().Debug("All pending requests already surfaced",
			zap.String("kind", string(kind)),
			zap.Int("total", len(requests)))
	}
	return newCount, nil
}

// markSeen records id and reports whether it was new
func (w *PendingWatcher) markSeen(id string) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, exists := w.seen[id]; exists {
		return false
	}
	w.seen[id] = time.Now()
	return true
}

func (w *PendingWatcher) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.cleanupSeen(time.Now())
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// cleanupSeen forgets requests surfaced before the retention window
func (w *PendingWatcher) cleanupSeen(now time.Time) int {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	cutoff := now.Add(-w.seenRetention)
	cleaned := 0
	for id, seenAt := range w.seen {
		if seenAt.Before(cutoff) {
			delete(w.seen, id)
			cleaned++
		}
	}

	if cleaned > 0 {
		zap.L().Debug("Cleaned up surfaced requests",
			zap.Int("cleaned", cleaned),
			zap.Int("remaining", len(w.seen)))
	}
	return cleaned
}
