package storage

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func testChain(t *testing.T, n int) []*Block {
	m := NewMemStore()
	if err := m.Append(NewGenesisBlock()); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		mineNext(t, m)
	}

	return m.Blocks()
}

func TestChainValid(t *testing.T) {
	v := NewChainValidator()

	assert.NoError(t, v.IsChainValid(testChain(t, 3)))
	assert.True(t, errors.Is(v.IsChainValid(nil), ErrEmptyChain))
}

func TestChainTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func([]*Block)
		want   error
	}{
		{"hash", func(c []*Block) { c[2].Hash = c[1].Hash }, ErrBadHash},
		{"prevHash", func(c []*Block) { c[2].PrevHash = c[0].Hash }, ErrBadHash},
		{"tx amount", func(c []*Block) { c[1].Transactions[0].Amount = 1e6 }, ErrBadHash},
		{"nonce", func(c []*Block) { c[3].Nonce++ }, ErrBadHash},
		{"genesis", func(c []*Block) { c[0].Nonce = 7 }, ErrBadHash},
		{"genesis replaced", func(c []*Block) {
			c[0].Timestamp = testTime
			c[0].Hash = c[0].CalculateHash()
		}, ErrBadGenesis},
		{"relinked", func(c []*Block) {
			c[2].PrevHash = c[0].Hash
			c[2].Hash = c[2].CalculateHash()
		}, ErrBadLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := testChain(t, 3)
			tt.tamper(chain)

			err := NewChainValidator().IsChainValid(chain)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestChainValidatorWork(t *testing.T) {
	chain := testChain(t, 2)

	// re-hash block 2 at an unmined nonce, keeping links intact
	chain[2].Nonce = 0
	for chain[2].Hash = chain[2].CalculateHash(); MeetsDifficulty(chain[2].Hash, 1); chain[2].Hash = chain[2].CalculateHash() {
		chain[2].Nonce++
	}

	assert.NoError(t, NewChainValidator().IsChainValid(chain))

	err := (&ChainValidator{Difficulty: 1}).IsChainValid(chain)
	assert.True(t, errors.Is(err, ErrBadWork))
}

func TestChainMissingLeadingBlocks(t *testing.T) {
	chain := testChain(t, 4)

	err := NewChainValidator().IsChainValid(chain[2:])
	assert.True(t, errors.Is(err, ErrBadGenesis), "got %v", err)

	err = NewChainValidator().IsChainValid(chain[1:])
	assert.True(t, errors.Is(err, ErrBadGenesis), "got %v", err)
}

func TestChainIndexOutOfSequence(t *testing.T) {
	chain := testChain(t, 3)

	// a block re-numbered and re-hashed in place, parent links untouched
	chain[3].Index = 7
	chain[3].Hash = chain[3].CalculateHash()

	err := NewChainValidator().IsChainValid(chain)
	assert.True(t, errors.Is(err, ErrBadIndex), "got %v", err)
}
