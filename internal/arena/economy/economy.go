// Package economy defines the fungible-currency collaborator consumed by the
// arena ledger. The ledger never holds balances itself; battle rewards and
// marketplace payments are delegated to a CurrencyService.
package economy

import (
	"context"

	"github.com/louisbranch/emberarena/internal/arena/domain"
)

// CurrencyService is the external balance/transfer capability.
//
// Implementations may call back into the process that invoked them; the
// ledger guards itself against such re-entrant calls, so implementations
// must treat a rejection from the ledger as final for that callback.
type CurrencyService interface {
	// BalanceOf reports the current balance of an identity.
	BalanceOf(ctx context.Context, identity domain.Identity) (int64, error)

	// Transfer moves amount from the service's reward pool to the recipient.
	Transfer(ctx context.Context, to domain.Identity, amount int64) error

	// TransferFrom moves amount between two identities on the payer's
	// authority.
	TransferFrom(ctx context.Context, from, to domain.Identity, amount int64) error
}
