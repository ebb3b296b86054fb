package ledger

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/powledger/pkg/storage"
)

type Option func(*Ledger) error

func WithDifficulty(d int) Option {
	return func(l *Ledger) error {
		if err := storage.ValidDifficulty(d); err != nil {
			return err
		}
		l.difficulty = d
		return nil
	}
}

func WithMiningReward(r float64) Option {
	return func(l *Ledger) error {
		if !(r > 0) {
			return errors.Errorf("mining reward must be positive, got %v", r)
		}
		l.reward = r
		return nil
	}
}

// WithStore backs the ledger with s. A non-empty store must hold a valid chain.
func WithStore(s storage.Store) Option {
	return func(l *Ledger) error {
		l.store = s
		return nil
	}
}

func WithValidator(v storage.Validator) Option {
	return func(l *Ledger) error {
		l.validator = v
		return nil
	}
}

func WithLogger(e *logrus.Entry) Option {
	return func(l *Ledger) error {
		l.logger = e
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(l *Ledger) error {
		l.tracer = t
		return nil
	}
}

// WithSilentDrop makes AddTransaction log rejected transactions and return
// nil instead of a RejectedError
func WithSilentDrop() Option {
	return func(l *Ledger) error {
		l.silentDrop = true
		return nil
	}
}

// WithBalanceIndex serves balances from an index maintained on every append
// instead of replaying the chain on each query
func WithBalanceIndex() Option {
	return func(l *Ledger) error {
		l.index = storage.NewBalanceIndex()
		return nil
	}
}

// WithClock overrides the time source used to stamp new blocks
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) error {
		l.now = now
		return nil
	}
}
