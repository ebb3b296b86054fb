package miner

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/storage"
	"github.com/tcfw/powledger/pkg/tx"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = time.Minute
)

// Chain is the part of the ledger the worker drives
type Chain interface {
	PendingTransactions() []*tx.Tx
	MinePendingTransactions(ctx context.Context, rewardAddress string) (*storage.Block, error)
}

// Worker mines the pending pool in the background, crediting rewards to a
// single address. Each run is bounded by a timeout; an empty pool or a run
// that times out backs off before the next attempt.
type Worker struct {
	chain   Chain
	address string

	interval time.Duration
	timeout  time.Duration
	bo       *backoff.Backoff

	onBlock func(*storage.Block)
	logger  *logrus.Entry
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		w.interval = d
	}
}

func WithTimeout(d time.Duration) Option {
	return func(w *Worker) {
		w.timeout = d
	}
}

func WithBackoff(min, max time.Duration) Option {
	return func(w *Worker) {
		w.bo.Min = min
		w.bo.Max = max
	}
}

// OnBlock is called with every block the worker appends
func OnBlock(fn func(*storage.Block)) Option {
	return func(w *Worker) {
		w.onBlock = fn
	}
}

func NewWorker(chain Chain, address string, opts ...Option) (*Worker, error) {
	if address == "" {
		return nil, errors.New("reward address required")
	}

	w := &Worker{
		chain:    chain,
		address:  address,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		bo: &backoff.Backoff{
			Min: 500 * time.Millisecond,
			Max: 30 * time.Second,
		},
		logger: logging.WithField("miner", address),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// MineOnce runs a single timeboxed mining attempt. It returns nil and no
// error when there was nothing to mine.
func (w *Worker) MineOnce(ctx context.Context) (*storage.Block, error) {
	if len(w.chain.PendingTransactions()) == 0 {
		return nil, nil
	}

	mctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	b, err := w.chain.MinePendingTransactions(mctx, w.address)
	if err != nil {
		return nil, err
	}

	if w.onBlock != nil {
		w.onBlock(b)
	}

	return b, nil
}

// Run mines until ctx is done
func (w *Worker) Run(ctx context.Context) error {
	w.logger.WithField("interval", w.interval).Info("auto miner started")
	defer w.logger.Info("auto miner stopped")

	for {
		wait := w.interval

		b, err := w.MineOnce(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, storage.ErrMiningCancelled):
			wait = w.bo.Duration()
			w.logger.WithField("waiting", wait).Warn("mining timed out")
		case err != nil:
			return errors.Wrap(err, "mining")
		case b == nil:
			wait = w.bo.Duration()
			w.logger.WithField("waiting", wait).Debug("nothing to mine")
		default:
			w.bo.Reset()
			w.logger.WithFields(logrus.Fields{
				"index": b.Index,
				"txs":   len(b.Transactions),
			}).Debug("auto mined block")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}
