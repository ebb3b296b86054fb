package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/cryptography"
)

// MineCheckInterval is how many nonces are tried between cancellation checks
const MineCheckInterval = 1 << 12

// MeetsDifficulty reports whether the first difficulty hex characters of hash are '0'
func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty < 1 || len(hash) < difficulty {
		return false
	}

	return strings.Count(hash[:difficulty], "0") == difficulty
}

func ValidDifficulty(difficulty int) error {
	if difficulty < 1 || difficulty > cryptography.HexDigestLen {
		return errors.Wrapf(ErrInvalidDifficulty, "must be between 1 and %d, got %d", cryptography.HexDigestLen, difficulty)
	}

	return nil
}

// Mine searches nonces sequentially until the block hash satisfies difficulty.
// A block that already satisfies it is left untouched. When ctx is done the
// search stops with ErrMiningCancelled and the nonce reached is kept, so
// calling Mine again resumes from there.
func (b *Block) Mine(ctx context.Context, difficulty int) error {
	if err := ValidDifficulty(difficulty); err != nil {
		return err
	}

	prefix := b.hashPrefix()
	b.Hash = hashWithNonce(prefix, b.Nonce)

	for attempts := uint64(0); !MeetsDifficulty(b.Hash, difficulty); attempts++ {
		if attempts%MineCheckInterval == 0 {
			select {
			case <-ctx.Done():
				logging.Entry().WithFields(logging.Fields{
					"index": b.Index,
					"nonce": b.Nonce,
				}).Debug("mining interrupted")
				return errors.Wrapf(ErrMiningCancelled, "block %d at nonce %d: %s", b.Index, b.Nonce, ctx.Err())
			default:
			}
		}

		b.Nonce++
		b.Hash = hashWithNonce(prefix, b.Nonce)
	}

	logging.Entry().WithFields(logging.Fields{
		"index": b.Index,
		"nonce": b.Nonce,
		"hash":  b.Hash,
	}).Info("block mined")

	return nil
}
