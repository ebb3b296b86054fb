package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/ledger"
	"github.com/tcfw/powledger/pkg/storage"
	"github.com/tcfw/powledger/pkg/tx"
)

// StampFormat is ISO-8601 down to the nanosecond so that snapshots taken
// within the same second get distinct names
const StampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// FileName keys a snapshot file by its UTC timestamp. Colons are replaced
// since they are not allowed in paths on every platform.
func FileName(ts time.Time, f Format) string {
	stamp := strings.ReplaceAll(ts.UTC().Format(StampFormat), ":", "-")
	return fmt.Sprintf("chain-%s.%s", stamp, f.Ext())
}

// Write stores s in dir and returns the path written
func Write(dir string, f Format, s *ledger.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating export dir")
	}

	path := filepath.Join(dir, FileName(s.GeneratedAt, f))

	// existing snapshots are never replaced
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return "", errors.Wrap(err, "creating export file")
	}

	if err := Encode(fh, f, s); err != nil {
		fh.Close()
		return "", err
	}

	if err := fh.Close(); err != nil {
		return "", errors.Wrap(err, "closing export file")
	}

	logging.WithFields(logging.Fields{
		"path":   path,
		"blocks": len(s.Blocks),
		"valid":  s.Valid,
	}).Info("snapshot written")

	return path, nil
}

// Read loads a snapshot, picking the format from the file extension
func Read(path string) (*ledger.Snapshot, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening snapshot")
	}
	defer fh.Close()

	return Decode(fh, f)
}

// Rebuild turns a snapshot back into blocks with their stored hashes intact
func Rebuild(s *ledger.Snapshot) []*storage.Block {
	return s.Chain()
}

// Verify checks the hashes and links of the chain held in s. When checkWork
// is set every non genesis block must also meet the recorded difficulty.
func Verify(s *ledger.Snapshot, checkWork bool) error {
	v := storage.NewChainValidator()
	if checkWork {
		v.Difficulty = s.Difficulty
	}

	if err := v.IsChainValid(Rebuild(s)); err != nil {
		return &ledger.IntegrityError{Err: err}
	}

	return nil
}

// FindTx looks a tx up in a snapshot without rebuilding the chain. Blocks
// whose bloom filter rules the hash out are skipped.
func FindTx(s *ledger.Snapshot, hash string) (*tx.Tx, uint64, error) {
	for _, b := range s.Blocks {
		if len(b.Bloom) != 0 {
			ok, err := storage.BloomContains(b.Bloom, hash)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "block %d bloom", b.Index)
			}
			if !ok {
				continue
			}
		}

		for _, t := range b.Transactions {
			if t.Hash == hash {
				return t.Tx(), b.Index, nil
			}
		}
	}

	return nil, 0, storage.ErrNotFound
}
