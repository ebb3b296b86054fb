package ledger

import (
	"time"

	"github.com/tcfw/powledger/pkg/storage"
	"github.com/tcfw/powledger/pkg/tx"
)

type TxView struct {
	Sender    string    `json:"sender,omitempty" yaml:"sender,omitempty" msgpack:"sender,omitempty"`
	Issuer    string    `json:"issuer,omitempty" yaml:"issuer,omitempty" msgpack:"issuer,omitempty"`
	Recipient string    `json:"recipient" yaml:"recipient" msgpack:"recipient"`
	Amount    float64   `json:"amount" yaml:"amount" msgpack:"amount"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" msgpack:"timestamp"`
	Hash      string    `json:"hash" yaml:"hash" msgpack:"hash"`
}

type BlockView struct {
	Index        uint64    `json:"index" yaml:"index" msgpack:"index"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp" msgpack:"timestamp"`
	PreviousHash string    `json:"previousHash" yaml:"previousHash" msgpack:"previousHash"`
	Hash         string    `json:"hash" yaml:"hash" msgpack:"hash"`
	Nonce        uint64    `json:"nonce" yaml:"nonce" msgpack:"nonce"`
	CID          string    `json:"cid,omitempty" yaml:"cid,omitempty" msgpack:"cid,omitempty"`
	Bloom        []byte    `json:"bloom,omitempty" yaml:"bloom,omitempty" msgpack:"bloom,omitempty"`
	Transactions []TxView  `json:"transactions" yaml:"transactions" msgpack:"transactions"`
}

// Snapshot is everything a display or persistence collaborator needs from the ledger
type Snapshot struct {
	GeneratedAt  time.Time          `json:"generatedAt" yaml:"generatedAt" msgpack:"generatedAt"`
	Difficulty   int                `json:"difficulty" yaml:"difficulty" msgpack:"difficulty"`
	MiningReward float64            `json:"miningReward" yaml:"miningReward" msgpack:"miningReward"`
	Valid        bool               `json:"valid" yaml:"valid" msgpack:"valid"`
	Blocks       []BlockView        `json:"chain" yaml:"chain" msgpack:"chain"`
	Pending      []TxView           `json:"pending" yaml:"pending" msgpack:"pending"`
	Balances     map[string]float64 `json:"balances" yaml:"balances" msgpack:"balances"`
}

func NewTxView(t *tx.Tx) TxView {
	return TxView{
		Sender:    t.From,
		Issuer:    t.Issuer,
		Recipient: t.To,
		Amount:    t.Amount,
		Timestamp: t.Ts.UTC(),
		Hash:      t.Hash(),
	}
}

// Tx rebuilds the transaction the view was taken from
func (v TxView) Tx() *tx.Tx {
	return &tx.Tx{
		From:   v.Sender,
		Issuer: v.Issuer,
		To:     v.Recipient,
		Amount: v.Amount,
		Ts:     v.Timestamp.UTC(),
	}
}

func NewBlockView(b *storage.Block) BlockView {
	v := BlockView{
		Index:        b.Index,
		Timestamp:    b.Timestamp.UTC(),
		PreviousHash: b.PrevHash,
		Hash:         b.Hash,
		Nonce:        b.Nonce,
		Transactions: make([]TxView, 0, len(b.Transactions)),
	}

	if id, err := b.CID(); err == nil {
		v.CID = id.String()
	}

	if bf, err := storage.MakeBloom(b.TxHashes()); err == nil {
		v.Bloom = bf
	}

	for _, t := range b.Transactions {
		v.Transactions = append(v.Transactions, NewTxView(t))
	}

	return v
}

// Block rebuilds the block the view was taken from. The stored hash is
// kept as is so that verification can compare it.
func (v BlockView) Block() *storage.Block {
	b := &storage.Block{
		Index:        v.Index,
		Timestamp:    v.Timestamp.UTC(),
		PrevHash:     v.PreviousHash,
		Hash:         v.Hash,
		Nonce:        v.Nonce,
		Transactions: make([]*tx.Tx, 0, len(v.Transactions)),
	}

	for _, t := range v.Transactions {
		b.Transactions = append(b.Transactions, t.Tx())
	}

	return b
}

// Chain rebuilds the blocks held in the snapshot
func (s *Snapshot) Chain() []*storage.Block {
	blocks := make([]*storage.Block, 0, len(s.Blocks))
	for _, v := range s.Blocks {
		blocks = append(blocks, v.Block())
	}

	return blocks
}

// Snapshot captures the chain, its validity, pending transactions and derived
// balances at a single point in time
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := &Snapshot{
		GeneratedAt:  l.now(),
		Difficulty:   l.difficulty,
		MiningReward: l.reward,
		Valid:        l.verifyLocked() == nil,
		Blocks:       make([]BlockView, 0, l.store.Len()),
		Pending:      make([]TxView, 0),
		Balances:     l.balancesLocked(),
	}

	for _, b := range l.store.Blocks() {
		s.Blocks = append(s.Blocks, NewBlockView(b))
	}

	for _, t := range l.pool.Peek() {
		s.Pending = append(s.Pending, NewTxView(t))
	}

	return s
}
