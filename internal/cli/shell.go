package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/tcfw/powledger/internal/config"
	"github.com/tcfw/powledger/internal/export"
	"github.com/tcfw/powledger/pkg/ledger"
	"github.com/tcfw/powledger/pkg/storage"
)

const shellHelp = `commands:
  send <from> <to> <amount>  queue a transfer
  mine <address>             mine pending transactions
  balance <address>          derived balance of an address
  balances                   every derived balance
  pending                    transactions waiting to be mined
  find <hash>                look up a mined transaction
  block <index|cid>          show a block and its transactions
  chain                      list blocks
  verify                     check chain integrity
  export                     write a snapshot
  quit                       exit`

var (
	errUsage = errors.New("bad usage")
)

// shell executes line commands against a ledger
type shell struct {
	l      *ledger.Ledger
	export *config.Export

	mu  sync.Mutex
	out io.Writer
}

func newShell(l *ledger.Ledger, exp *config.Export, out io.Writer) *shell {
	return &shell{l: l, export: exp, out: out}
}

func (s *shell) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) render(fn func(io.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.out)
}

func (s *shell) blockMined(b *storage.Block) {
	s.printf("mined block %d %s (nonce %d, %d txs)\n", b.Index, b.Hash, b.Nonce, len(b.Transactions))
}

// exec runs a single command line, reporting whether the shell should exit
func (s *shell) exec(ctx context.Context, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}

	switch cmd, args := strings.ToLower(args[0]), args[1:]; cmd {
	case "quit", "exit":
		return true, nil

	case "help":
		s.printf("%s\n", shellHelp)

	case "send":
		if len(args) != 3 {
			return false, errors.Wrap(errUsage, "send <from> <to> <amount>")
		}
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return false, errors.Wrap(err, "parsing amount")
		}
		t, err := s.l.SubmitTransaction(args[0], args[1], amount)
		if err != nil {
			return false, err
		}
		s.printf("queued %s\n", t.Hash())

	case "mine":
		if len(args) != 1 {
			return false, errors.Wrap(errUsage, "mine <address>")
		}
		b, err := s.l.MinePendingTransactions(ctx, args[0])
		if err != nil {
			return false, err
		}
		s.blockMined(b)

	case "balance":
		if len(args) != 1 {
			return false, errors.Wrap(errUsage, "balance <address>")
		}
		s.printf("%s %s\n", args[0], formatAmount(s.l.GetBalance(args[0])))

	case "balances":
		return false, s.render(func(w io.Writer) error { return printBalances(w, s.l.Balances()) })

	case "pending":
		return false, s.render(func(w io.Writer) error { return printTxs(w, s.l.PendingTransactions()) })

	case "find":
		if len(args) != 1 {
			return false, errors.Wrap(errUsage, "find <hash>")
		}
		t, index, err := s.l.FindTransaction(args[0])
		if err != nil {
			return false, err
		}
		s.printf("block %d: %s -> %s %s\n", index, sender(t), t.To, formatAmount(t.Amount))

	case "block":
		if len(args) != 1 {
			return false, errors.Wrap(errUsage, "block <index|cid>")
		}
		var (
			b   *storage.Block
			err error
		)
		if index, perr := strconv.ParseUint(args[0], 10, 64); perr == nil {
			b, err = s.l.Block(index)
		} else {
			b, err = s.l.BlockByCID(args[0])
		}
		if err != nil {
			return false, err
		}
		return false, s.render(func(w io.Writer) error { return printBlock(w, b) })

	case "chain":
		return false, s.render(func(w io.Writer) error { return printChain(w, s.l.Blocks()) })

	case "verify":
		s.render(func(w io.Writer) error {
			printValidity(w, s.l.Verify())
			return nil
		})

	case "export":
		path, err := export.Write(s.export.Dir, s.export.Format, s.l.Snapshot())
		if err != nil {
			return false, err
		}
		s.printf("wrote %s\n", path)

	default:
		return false, errors.Wrapf(errUsage, "unknown command %q, try help", cmd)
	}

	return false, nil
}
