package mock

import (
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/mock"
	"github.com/tcfw/powledger/pkg/storage"
	"github.com/tcfw/powledger/pkg/tx"
)

var (
	_ storage.Store = (*Store)(nil)
)

// Store is a testify mock of storage.Store
type Store struct {
	mock.Mock
}

func (m *Store) Append(b *storage.Block) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *Store) Get(index uint64) (*storage.Block, error) {
	args := m.Called(index)
	b, _ := args.Get(0).(*storage.Block)
	return b, args.Error(1)
}

func (m *Store) GetByCID(id cid.Cid) (*storage.Block, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*storage.Block)
	return b, args.Error(1)
}

func (m *Store) Latest() (*storage.Block, error) {
	args := m.Called()
	b, _ := args.Get(0).(*storage.Block)
	return b, args.Error(1)
}

func (m *Store) Len() int {
	args := m.Called()
	return args.Int(0)
}

func (m *Store) Blocks() []*storage.Block {
	args := m.Called()
	b, _ := args.Get(0).([]*storage.Block)
	return b
}

func (m *Store) FindTx(hash string) (*tx.Tx, *storage.Block, error) {
	args := m.Called(hash)
	t, _ := args.Get(0).(*tx.Tx)
	b, _ := args.Get(1).(*storage.Block)
	return t, b, args.Error(2)
}
