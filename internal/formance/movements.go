package formance

import (
	"context"
	"fmt"
	"time"

	"topup-admin-go/internal/store"

	"github.com/formancehq/formance-sdk-go/v3/pkg/models/operations"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Numscript templates. Money enters and leaves user accounts through @world;
// the user side may go negative, matching the console's unchecked balances.

const numscriptCredit = `vars {
  asset $asset
  number $amount
  account $user_id
  string $entry_type
  string $actor_id
  string $amount_human
}

send [$asset $amount] (
  source = @world
  destination = @users:$user_id
)

set_tx_meta("entry_type", $entry_type)
set_tx_meta("actor_id", $actor_id)
set_tx_meta("amount_human", $amount_human)
`

const numscriptDebit = `vars {
  asset $asset
  number $amount
  account $user_id
  string $entry_type
  string $actor_id
  string $amount_human
}

send [$asset $amount] (
  source = @users:$user_id allowing unbounded overdraft
  destination = @world
)

set_tx_meta("entry_type", $entry_type)
set_tx_meta("actor_id", $actor_id)
set_tx_meta("amount_human", $amount_human)
`

// movementScript picks the template for a signed delta and returns the absolute amount.
func movementScript(amount decimal.Decimal) (string, decimal.Decimal) {
	if amount.IsNegative() {
		return numscriptDebit, amount.Neg()
	}
	return numscriptCredit, amount
}

// smallestUnits renders a decimal amount as an integer string in the currency's minor unit.
func smallestUnits(amount decimal.Decimal, currency string) string {
	return amount.Shift(int32(precisionFor(currency))).BigInt().String()
}

// RecordMovement posts one committed balance movement. The movement reference is the
// Formance transaction reference, so replays surface as store.ErrDuplicateReference.
func (s *Service) RecordMovement(ctx context.Context, params store.MovementParams) error {
	if params.Amount.IsZero() {
		zap.L().Debug("Skipping zero movement", zap.String("reference", params.Reference))
		return nil
	}

	script, abs := movementScript(params.Amount)
	postTx := shared.V2PostTransaction{
		Reference: strPtr(params.Reference),
		Script: &shared.V2PostTransactionScript{
			Plain: script,
			Vars: map[string]string{
				"asset":        formanceAsset(s.currency),
				"amount":       smallestUnits(abs, s.currency),
				"user_id":      params.UserId,
				"entry_type":   params.EntryType,
				"actor_id":     params.ActorId,
				"amount_human": params.Amount.String(),
			},
		},
	}
	if !params.OccurredAt.IsZero() {
		ts := params.OccurredAt.UTC().Truncate(time.Microsecond)
		postTx.Timestamp = &ts
	}

	_, err := s.client.Ledger.V2.CreateTransaction(ctx, operations.V2CreateTransactionRequest{
		Ledger:            s.ledger,
		V2PostTransaction: postTx,
	})
	if err != nil {
		if isConflictError(err) {
			return fmt.Errorf("%w: reference %s already mirrored", store.ErrDuplicateReference, params.Reference)
		}
		return fmt.Errorf("error mirroring movement: %w", err)
	}

	zap.L().Info("Movement mirrored to Formance",
		zap.String("reference", params.Reference),
		zap.String("user_id", params.UserId),
		zap.String("entry_type", params.EntryType),
		zap.String("amount", params.Amount.String()))
	return nil
}
