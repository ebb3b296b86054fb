package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/powledger/pkg/tx"
)

func rewards(t *testing.T, n int) []*tx.Tx {
	txs := make([]*tx.Tx, 0, n)
	for i := 0; i < n; i++ {
		r, err := tx.NewReward("addr", float64(i+1))
		require.NoError(t, err)
		txs = append(txs, r)
	}
	return txs
}

func TestMemPoolOrder(t *testing.T) {
	p := NewTxMemPool()
	txs := rewards(t, 3)

	for _, r := range txs {
		p.AddTx(r)
	}

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, TxList(txs), p.Peek())
}

func TestMemPoolPeekIsCopy(t *testing.T) {
	p := NewTxMemPool()
	p.AddTx(rewards(t, 1)[0])

	l := p.Peek()
	l[0] = nil

	assert.NotNil(t, p.Peek()[0])
}

func TestMemPoolReset(t *testing.T) {
	p := NewTxMemPool()
	txs := rewards(t, 4)

	for _, r := range txs[:3] {
		p.AddTx(r)
	}

	p.Reset(2, txs[3])

	assert.Equal(t, TxList{txs[3], txs[2]}, p.Peek())
}

func TestMemPoolResetPastEnd(t *testing.T) {
	p := NewTxMemPool()
	txs := rewards(t, 2)
	p.AddTx(txs[0])

	p.Reset(5, txs[1])

	assert.Equal(t, TxList{txs[1]}, p.Peek())

	p.Reset(1)
	assert.Equal(t, 0, p.Len())
}
