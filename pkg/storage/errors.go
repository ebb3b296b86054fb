package storage

import "github.com/pkg/errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyChain = errors.New("chain is empty")

	ErrBadIndex   = errors.New("block index out of sequence")
	ErrBadGenesis = errors.New("first block is not the genesis block")
	ErrBadLink    = errors.New("previous hash does not match parent")
	ErrBadHash    = errors.New("stored hash does not match block contents")
	ErrBadWork    = errors.New("block hash does not meet difficulty")

	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrMiningCancelled   = errors.New("mining cancelled")
)
