package storage

import (
	"github.com/ipfs/go-cid"
	"github.com/tcfw/powledger/pkg/tx"
)

// Store is an append-only sequence of blocks. Blocks handed out by a Store
// are the stored instances and must not be modified by callers.
type Store interface {
	Append(*Block) error

	Get(index uint64) (*Block, error)
	GetByCID(cid.Cid) (*Block, error)
	Latest() (*Block, error)
	Len() int
	Blocks() []*Block

	FindTx(hash string) (*tx.Tx, *Block, error)
}
