package storage

import (
	"testing"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/tcfw/powledger/pkg/cryptography"
	"github.com/tcfw/powledger/pkg/tx"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testTxs(t *testing.T) []*tx.Tx {
	return []*tx.Tx{
		{From: "alice", To: "bob", Amount: 5, Ts: testTime},
		{Issuer: tx.RewardIssuer, To: "miner", Amount: 10, Ts: testTime.Add(time.Second)},
	}
}

func TestNewBlock(t *testing.T) {
	b := NewBlock(1, testTime, testTxs(t), GenesisPrevHash)

	assert.Equal(t, uint64(1), b.Index)
	assert.Equal(t, uint64(0), b.Nonce)
	assert.Equal(t, b.CalculateHash(), b.Hash)
	assert.Len(t, b.Hash, cryptography.HexDigestLen)
}

func TestNewBlockNilTxs(t *testing.T) {
	b := NewBlock(1, testTime, nil, GenesisPrevHash)

	assert.NotNil(t, b.Transactions)
	assert.Empty(t, b.Transactions)
}

func TestBlockHashCoversFields(t *testing.T) {
	base := NewBlock(1, testTime, testTxs(t), GenesisPrevHash)

	mutations := map[string]func(*Block){
		"index":     func(b *Block) { b.Index = 2 },
		"prevHash":  func(b *Block) { b.PrevHash = "abc" },
		"timestamp": func(b *Block) { b.Timestamp = b.Timestamp.Add(time.Millisecond) },
		"nonce":     func(b *Block) { b.Nonce = 1 },
		"txAmount":  func(b *Block) { b.Transactions[0].Amount = 6 },
		"txOrder": func(b *Block) {
			b.Transactions[0], b.Transactions[1] = b.Transactions[1], b.Transactions[0]
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			b := base.Clone()
			mutate(b)
			assert.NotEqual(t, base.Hash, b.CalculateHash())
		})
	}
}

func TestBlockCID(t *testing.T) {
	b := NewBlock(1, testTime, testTxs(t), GenesisPrevHash)

	id, err := b.CID()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, uint64(cid.Raw), id.Prefix().Codec)
	assert.Equal(t, uint64(cryptography.HashCode), id.Prefix().MhType)

	b.Hash = "not hex"
	_, err = b.CID()
	assert.Error(t, err)
}

func TestBlockClone(t *testing.T) {
	b := NewBlock(1, testTime, testTxs(t), GenesisPrevHash)
	c := b.Clone()

	c.Transactions[0].Amount = 1000
	c.Nonce = 99

	assert.Equal(t, float64(5), b.Transactions[0].Amount)
	assert.Equal(t, uint64(0), b.Nonce)
	assert.Nil(t, (*Block)(nil).Clone())
}

func TestGenesisBlock(t *testing.T) {
	g := NewGenesisBlock()

	assert.Equal(t, uint64(0), g.Index)
	assert.Equal(t, GenesisPrevHash, g.PrevHash)
	assert.Empty(t, g.Transactions)
	assert.Equal(t, g.CalculateHash(), g.Hash)
	assert.Equal(t, NewGenesisBlock().Hash, g.Hash)
}

func TestBlockMarshal(t *testing.T) {
	b := NewBlock(4, testTime, testTxs(t), GenesisPrevHash)
	b.Nonce = 77
	b.Hash = b.CalculateHash()

	d, err := b.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	var got Block
	if err := got.Unmarshal(d); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, b.Hash, got.Hash)
	assert.Equal(t, b.CalculateHash(), got.CalculateHash())
	assert.Len(t, got.Transactions, 2)
}
