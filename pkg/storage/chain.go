package storage

import (
	"strconv"
	"strings"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/tcfw/powledger/pkg/cryptography"
	"github.com/tcfw/powledger/pkg/tx"
	"github.com/vmihailenco/msgpack/v5"
)

// Block is an ordered batch of transactions linked to its parent by hash
type Block struct {
	Index        uint64    `msgpack:"h"`
	Timestamp    time.Time `msgpack:"t"`
	Transactions []*tx.Tx  `msgpack:"x"`
	PrevHash     string    `msgpack:"p"`
	Hash         string    `msgpack:"i"`
	Nonce        uint64    `msgpack:"n"`
}

// NewBlock creates an unmined block with a zero nonce and its hash already
// calculated. Transactions are not validated.
func NewBlock(index uint64, ts time.Time, txs []*tx.Tx, prevHash string) *Block {
	if txs == nil {
		txs = []*tx.Tx{}
	}

	b := &Block{
		Index:        index,
		Timestamp:    ts.UTC(),
		Transactions: txs,
		PrevHash:     prevHash,
	}
	b.Hash = b.CalculateHash()

	return b
}

// hashPrefix is the digest input preceding the nonce
func (b *Block) hashPrefix() string {
	var s strings.Builder

	s.WriteString(strconv.FormatUint(b.Index, 10))
	s.WriteByte('|')
	s.WriteString(b.PrevHash)
	s.WriteByte('|')
	s.WriteString(b.Timestamp.UTC().Format(tx.TimeFormat))
	s.WriteByte('|')
	for _, t := range b.Transactions {
		s.WriteString(t.Hash())
	}
	s.WriteByte('|')

	return s.String()
}

func hashWithNonce(prefix string, nonce uint64) string {
	return cryptography.HexDigest(strconv.AppendUint([]byte(prefix), nonce, 10))
}

// CalculateHash derives the block hash from the stored fields. It is never cached.
func (b *Block) CalculateHash() string {
	return hashWithNonce(b.hashPrefix(), b.Nonce)
}

// CID wraps the block hash as a content identifier
func (b *Block) CID() (cid.Cid, error) {
	mh, err := cryptography.MultihashFromHex(b.Hash)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "block hash")
	}

	return cid.NewCidV1(cid.Raw, mh), nil
}

func (b *Block) TxHashes() []string {
	h := make([]string, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		h = append(h, t.Hash())
	}

	return h
}

// Clone deep copies the block and its transactions
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}

	c := *b
	c.Transactions = make([]*tx.Tx, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		c.Transactions = append(c.Transactions, t.Clone())
	}

	return &c
}

func (b *Block) Marshal() ([]byte, error) {
	d, err := msgpack.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling block")
	}

	return d, nil
}

// Unmarshal decodes a block. The stored hash is kept so that it can be
// checked against CalculateHash.
func (b *Block) Unmarshal(d []byte) error {
	if err := msgpack.Unmarshal(d, b); err != nil {
		return errors.Wrap(err, "unmarshaling block")
	}

	b.Timestamp = b.Timestamp.UTC()
	if b.Transactions == nil {
		b.Transactions = []*tx.Tx{}
	}
	for _, t := range b.Transactions {
		t.Ts = t.Ts.UTC()
	}

	return nil
}
