package storage

import (
	"github.com/pkg/errors"
)

type Validator interface {
	IsBlockValid(b *Block, parent *Block) error
	IsChainValid(blocks []*Block) error
}

var (
	_ Validator = (*ChainValidator)(nil)
)

// ChainValidator re-derives block hashes and parent links from stored fields.
// With a non-zero Difficulty every non-genesis block must also carry valid work.
type ChainValidator struct {
	Difficulty int
}

func NewChainValidator() *ChainValidator {
	return &ChainValidator{}
}

// IsBlockValid checks b's own hash and, when parent is given, the link to it
func (v *ChainValidator) IsBlockValid(b *Block, parent *Block) error {
	if expected := b.CalculateHash(); b.Hash != expected {
		return errors.Wrapf(ErrBadHash, "expected %s, got %s", expected, b.Hash)
	}

	if parent == nil {
		return nil
	}

	if b.PrevHash != parent.Hash {
		return errors.Wrapf(ErrBadLink, "expected %s, got %s", parent.Hash, b.PrevHash)
	}

	if v.Difficulty > 0 && !MeetsDifficulty(b.Hash, v.Difficulty) {
		return errors.Wrapf(ErrBadWork, "difficulty %d, hash %s", v.Difficulty, b.Hash)
	}

	return nil
}

// IsChainValid walks the chain from genesis and stops at the first bad block
func (v *ChainValidator) IsChainValid(blocks []*Block) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	if err := v.IsBlockValid(blocks[0], nil); err != nil {
		return errors.Wrap(err, "block 0 invalid")
	}

	if err := isGenesis(blocks[0]); err != nil {
		return errors.Wrap(err, "block 0 invalid")
	}

	for i := 1; i < len(blocks); i++ {
		if blocks[i].Index != uint64(i) {
			return errors.Wrapf(ErrBadIndex, "block %d invalid: has index %d", i, blocks[i].Index)
		}

		if err := v.IsBlockValid(blocks[i], blocks[i-1]); err != nil {
			return errors.Wrapf(err, "block %d invalid", i)
		}
	}

	return nil
}

// isGenesis anchors a chain to the fixed genesis block so that dropping
// leading blocks cannot go unnoticed
func isGenesis(b *Block) error {
	if b.Index != 0 || b.PrevHash != GenesisPrevHash {
		return errors.Wrapf(ErrBadGenesis, "index %d, prev %s", b.Index, b.PrevHash)
	}

	if g := NewGenesisBlock(); b.Hash != g.Hash {
		return errors.Wrapf(ErrBadGenesis, "expected %s, got %s", g.Hash, b.Hash)
	}

	return nil
}
