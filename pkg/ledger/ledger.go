package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/storage"
	"github.com/tcfw/powledger/pkg/tx"
)

const (
	DefaultDifficulty   = 2
	DefaultMiningReward = 100
)

// Ledger owns a proof-of-work chain and the pool of transactions waiting
// to be mined into it. Balances are never stored; they are derived from
// the mined blocks.
type Ledger struct {
	mu     sync.RWMutex
	mineMu sync.Mutex

	store     storage.Store
	validator storage.Validator
	index     *storage.BalanceIndex
	pool      *TxMemPool

	difficulty int
	reward     float64
	silentDrop bool

	now    func() time.Time
	logger *logrus.Entry
	tracer Tracer
}

// New creates a ledger holding only the genesis block
func New(opts ...Option) (*Ledger, error) {
	l := &Ledger{
		pool:       NewTxMemPool(),
		difficulty: DefaultDifficulty,
		reward:     DefaultMiningReward,
		now:        func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	if l.store == nil {
		l.store = storage.NewMemStore()
	}
	if l.validator == nil {
		l.validator = storage.NewChainValidator()
	}
	if l.logger == nil {
		l.logger = logging.Entry()
	}

	if l.store.Len() == 0 {
		if err := l.store.Append(l.CreateGenesis()); err != nil {
			return nil, errors.Wrap(err, "appending genesis block")
		}
	} else if err := l.validator.IsChainValid(l.store.Blocks()); err != nil {
		return nil, &IntegrityError{err}
	}

	if l.index != nil {
		l.index.Rebuild(l.store.Blocks())
	}

	return l, nil
}

// CreateGenesis returns the fixed first block of every chain
func (l *Ledger) CreateGenesis() *storage.Block {
	return storage.NewGenesisBlock()
}

func (l *Ledger) Difficulty() int {
	return l.difficulty
}

func (l *Ledger) MiningReward() float64 {
	return l.reward
}

// Len is the number of blocks in the chain, genesis included
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.store.Len()
}

// LatestBlock returns a copy of the tip of the chain
func (l *Ledger) LatestBlock() (*storage.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, err := l.store.Latest()
	if err != nil {
		return nil, err
	}

	return b.Clone(), nil
}

// Blocks returns a copy of the whole chain
func (l *Ledger) Blocks() []*storage.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stored := l.store.Blocks()
	blocks := make([]*storage.Block, 0, len(stored))
	for _, b := range stored {
		blocks = append(blocks, b.Clone())
	}

	return blocks
}

// PendingTransactions returns copies of the transactions waiting to be mined
func (l *Ledger) PendingTransactions() []*tx.Tx {
	pending := l.pool.Peek()

	txs := make([]*tx.Tx, 0, len(pending))
	for _, t := range pending {
		txs = append(txs, t.Clone())
	}

	return txs
}

// GetBalance derives the balance of address from every mined block. Pending
// transactions are not counted.
func (l *Ledger) GetBalance(address string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balanceLocked(address)
}

func (l *Ledger) balanceLocked(address string) float64 {
	if l.index != nil {
		return l.index.Balance(address)
	}

	var balance float64
	for _, b := range l.store.Blocks() {
		for _, t := range b.Transactions {
			if !t.IsReward() && t.From == address {
				balance -= t.Amount
			}
			if t.To == address {
				balance += t.Amount
			}
		}
	}

	return balance
}

// Balances derives the balance of every address that appears in a mined block
func (l *Ledger) Balances() map[string]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balancesLocked()
}

func (l *Ledger) balancesLocked() map[string]float64 {
	if l.index != nil {
		return l.index.All()
	}

	idx := storage.NewBalanceIndex()
	idx.Rebuild(l.store.Blocks())

	return idx.All()
}

// ValidateTransaction reports whether t may enter the pending pool
func (l *Ledger) ValidateTransaction(t *tx.Tx) bool {
	return l.validate(t) == nil
}

func (l *Ledger) validate(t *tx.Tx) error {
	if t == nil {
		return errors.New("transaction is nil")
	}

	if err := t.Validate(); err != nil {
		return err
	}

	if t.IsReward() {
		return nil
	}

	l.mu.RLock()
	balance := l.balanceLocked(t.From)
	l.mu.RUnlock()

	if balance < t.Amount {
		return errors.Errorf("insufficient balance: %s has %v, needs %v", t.From, balance, t.Amount)
	}

	return nil
}

// AddTransaction validates t and queues it for the next block. A rejected
// tx leaves the pool untouched and is returned as a *RejectedError, or only
// logged when the ledger was built WithSilentDrop.
func (l *Ledger) AddTransaction(t *tx.Tx) error {
	if err := l.validate(t); err != nil {
		entry := l.logger.WithError(err)
		if t != nil {
			entry = entry.WithFields(logrus.Fields{
				"sender":    t.From,
				"recipient": t.To,
				"amount":    t.Amount,
			})
		}
		entry.Warn("transaction rejected")

		if l.tracer != nil {
			l.tracer.OnTxRejected(t.Clone(), err)
		}

		if l.silentDrop {
			return nil
		}
		return &RejectedError{Tx: t, Reason: err}
	}

	l.pool.AddTx(t.Clone())

	l.logger.WithFields(logrus.Fields{
		"hash":   t.Hash(),
		"reward": t.IsReward(),
	}).Debug("transaction queued")

	if l.tracer != nil {
		l.tracer.OnTxAccepted(t.Clone())
	}

	return nil
}

// SubmitTransaction builds a transfer and adds it to the pending pool
func (l *Ledger) SubmitTransaction(from, to string, amount float64) (*tx.Tx, error) {
	t, err := tx.New(from, to, amount)
	if err != nil {
		return nil, err
	}

	if err := l.AddTransaction(t); err != nil {
		return nil, err
	}

	return t, nil
}

// MinePendingTransactions mines every pending tx into a new block and
// queues a reward for rewardAddress to be confirmed by the next block.
// Transactions added while mining is under way wait for the next block.
// If ctx ends first, neither the chain nor the pool change.
func (l *Ledger) MinePendingTransactions(ctx context.Context, rewardAddress string) (*storage.Block, error) {
	reward, err := tx.NewReward(rewardAddress, l.reward)
	if err != nil {
		return nil, errors.Wrap(err, "creating reward")
	}

	l.mineMu.Lock()
	defer l.mineMu.Unlock()

	l.mu.RLock()
	tip, err := l.store.Latest()
	l.mu.RUnlock()
	if err != nil {
		return nil, errors.Wrap(err, "getting latest block")
	}

	pending := l.pool.Peek()
	block := storage.NewBlock(tip.Index+1, l.now(), pending, tip.Hash)

	start := time.Now()
	if err := block.Mine(ctx, l.difficulty); err != nil {
		return nil, err
	}

	l.mu.Lock()
	if err := l.store.Append(block); err != nil {
		l.mu.Unlock()
		return nil, errors.Wrap(err, "appending block")
	}
	if l.index != nil {
		l.index.Apply(block)
	}
	l.pool.Reset(len(pending), reward)
	l.mu.Unlock()

	l.logger.WithFields(logrus.Fields{
		"index": block.Index,
		"hash":  block.Hash,
		"nonce": block.Nonce,
		"txs":   len(block.Transactions),
		"took":  time.Since(start),
		"miner": rewardAddress,
	}).Info("block appended")

	if l.tracer != nil {
		l.tracer.OnBlockMined(block.Clone())
	}

	return block.Clone(), nil
}

// FindTransaction looks up a mined tx by hash, returning the index of its block
func (l *Ledger) FindTransaction(hash string) (*tx.Tx, uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, b, err := l.store.FindTx(hash)
	if err != nil {
		return nil, 0, err
	}

	return t.Clone(), b.Index, nil
}

// BlockByCID returns a copy of the block whose content id is id
func (l *Ledger) BlockByCID(id string) (*storage.Block, error) {
	c, err := cid.Decode(id)
	if err != nil {
		return nil, errors.Wrap(err, "decoding cid")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	b, err := l.store.GetByCID(c)
	if err != nil {
		return nil, err
	}

	return b.Clone(), nil
}

// Block returns a copy of the block at index
func (l *Ledger) Block(index uint64) (*storage.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, err := l.store.Get(index)
	if err != nil {
		return nil, err
	}

	return b.Clone(), nil
}

// Verify recomputes every block hash and parent link, returning an
// *IntegrityError for the first block that does not match
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.verifyLocked()
}

func (l *Ledger) verifyLocked() error {
	if err := l.validator.IsChainValid(l.store.Blocks()); err != nil {
		return &IntegrityError{err}
	}

	return nil
}

// IsChainValid reports whether the chain still matches its hashes
func (l *Ledger) IsChainValid() bool {
	err := l.Verify()
	if err != nil {
		l.logger.WithError(err).Warn("chain failed verification")
	}

	return err == nil
}
