package storage

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	falsePositive = 0.01
)

func newTxBloom(txHashes []string) *bloom.BloomFilter {
	n := uint(len(txHashes))
	if n == 0 {
		n = 1
	}

	b := bloom.NewWithEstimates(n, falsePositive)
	for _, h := range txHashes {
		b.AddString(h)
	}

	return b
}

// MakeBloom builds an encoded bloom filter over a set of tx hashes
func MakeBloom(txHashes []string) ([]byte, error) {
	return newTxBloom(txHashes).GobEncode()
}

// BloomContains tests an encoded bloom filter for a tx hash
func BloomContains(b []byte, txHash string) (bool, error) {
	f := &bloom.BloomFilter{}

	if err := f.GobDecode(b); err != nil {
		return false, err
	}

	return f.TestString(txHash), nil
}
