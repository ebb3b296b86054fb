//go:generate go run github.com/vektra/mockery/v2 --name Tracer

package ledger

import (
	"github.com/tcfw/powledger/pkg/storage"
	"github.com/tcfw/powledger/pkg/tx"
)

// Tracer observes ledger activity. Callbacks run synchronously on the
// calling goroutine and receive copies.
type Tracer interface {
	OnTxAccepted(*tx.Tx)
	OnTxRejected(*tx.Tx, error)
	OnBlockMined(*storage.Block)
}
