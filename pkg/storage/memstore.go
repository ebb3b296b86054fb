package storage

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/tcfw/powledger/pkg/tx"
)

var (
	_ Store = (*MemStore)(nil)
)

// MemStore keeps the chain in process memory for the lifetime of the engine
type MemStore struct {
	mu sync.RWMutex

	blocks []*Block
	blooms []*bloom.BloomFilter
	cids   map[cid.Cid]uint64
}

func NewMemStore() *MemStore {
	return &MemStore{
		blocks: make([]*Block, 0),
		blooms: make([]*bloom.BloomFilter, 0),
		cids:   make(map[cid.Cid]uint64),
	}
}

// Append adds b to the end of the chain. The index must follow the current
// tip and PrevHash must name it; the first block must be a genesis block.
func (m *MemStore) Append(b *Block) error {
	if b == nil {
		return errors.New("block must not be nil")
	}

	id, err := b.CID()
	if err != nil {
		return errors.Wrap(err, "making block cid")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := uint64(len(m.blocks))
	if b.Index != n {
		return errors.Wrapf(ErrBadIndex, "expected %d, got %d", n, b.Index)
	}

	if n == 0 {
		if b.PrevHash != GenesisPrevHash {
			return errors.Wrap(ErrBadLink, "first block is not genesis")
		}
	} else if tip := m.blocks[n-1]; b.PrevHash != tip.Hash {
		return errors.Wrapf(ErrBadLink, "expected %s, got %s", tip.Hash, b.PrevHash)
	}

	m.blocks = append(m.blocks, b)
	m.blooms = append(m.blooms, newTxBloom(b.TxHashes()))
	m.cids[id] = n

	return nil
}

func (m *MemStore) Get(index uint64) (*Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index >= uint64(len(m.blocks)) {
		return nil, ErrNotFound
	}

	return m.blocks[index], nil
}

func (m *MemStore) GetByCID(id cid.Cid) (*Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.cids[id]
	if !ok {
		return nil, ErrNotFound
	}

	return m.blocks[i], nil
}

func (m *MemStore) Latest() (*Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.blocks) == 0 {
		return nil, ErrEmptyChain
	}

	return m.blocks[len(m.blocks)-1], nil
}

func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blocks)
}

// Blocks returns the chain in order. The slice is a copy, the blocks are not.
func (m *MemStore) Blocks() []*Block {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b := make([]*Block, len(m.blocks))
	copy(b, m.blocks)

	return b
}

// FindTx locates a mined tx by hash, skipping blocks whose bloom filter rules it out
func (m *MemStore) FindTx(hash string) (*tx.Tx, *Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i, b := range m.blocks {
		if !m.blooms[i].TestString(hash) {
			continue
		}

		for _, t := range b.Transactions {
			if t.Hash() == hash {
				return t, b, nil
			}
		}
	}

	return nil, nil, ErrNotFound
}
