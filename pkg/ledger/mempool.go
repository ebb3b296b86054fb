package ledger

import (
	"sync"

	"github.com/tcfw/powledger/pkg/tx"
)

type TxList []*tx.Tx

// TxMemPool holds accepted transactions, in submission order, until they are mined
type TxMemPool struct {
	plist TxList
	mu    sync.Mutex
}

func NewTxMemPool() *TxMemPool {
	return &TxMemPool{
		plist: make(TxList, 0),
	}
}

func (m *TxMemPool) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.plist)
}

func (m *TxMemPool) AddTx(t *tx.Tx) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plist = append(m.plist, t)
}

// Peek returns the pool contents in order without removing them
func (m *TxMemPool) Peek() TxList {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := make(TxList, len(m.plist))
	copy(l, m.plist)

	return l
}

// Reset drops the first n transactions, which have been mined, and places
// head in front of whatever arrived after them
func (m *TxMemPool) Reset(n int, head ...*tx.Tx) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n > len(m.plist) {
		n = len(m.plist)
	}

	next := make(TxList, 0, len(head)+len(m.plist)-n)
	next = append(next, head...)
	next = append(next, m.plist[n:]...)

	m.plist = next
}
