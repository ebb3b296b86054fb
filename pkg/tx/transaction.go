package tx

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tcfw/powledger/pkg/cryptography"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// RewardIssuer marks a mining reward in place of a sender
	RewardIssuer = "mining-reward"

	// TimeFormat is the canonical timestamp encoding folded into digests
	TimeFormat = time.RFC3339Nano
)

// Tx moves Amount from one address to another, or credits a miner when
// issued as a reward. A Tx is not modified once constructed.
type Tx struct {
	From   string    `msgpack:"f,omitempty" json:"sender,omitempty" yaml:"sender,omitempty"`
	Issuer string    `msgpack:"i,omitempty" json:"issuer,omitempty" yaml:"issuer,omitempty"`
	To     string    `msgpack:"r" json:"recipient" yaml:"recipient"`
	Amount float64   `msgpack:"a" json:"amount" yaml:"amount"`
	Ts     time.Time `msgpack:"t" json:"timestamp" yaml:"timestamp"`
}

// New constructs a transfer between two addresses, stamped with the current time
func New(from, to string, amount float64) (*Tx, error) {
	t := &Tx{
		From:   from,
		To:     to,
		Amount: amount,
		Ts:     time.Now().UTC(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// NewReward constructs a mining reward credited to the given address
func NewReward(to string, amount float64) (*Tx, error) {
	t := &Tx{
		Issuer: RewardIssuer,
		To:     to,
		Amount: amount,
		Ts:     time.Now().UTC(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// IsReward reports whether the tx was issued as a mining reward
func (t *Tx) IsReward() bool {
	return t.From == "" && t.Issuer == RewardIssuer
}

// Validate checks the shape of the tx. It does not look at balances.
func (t *Tx) Validate() error {
	if t.To == "" {
		return errors.Wrap(ErrInvalidTransaction, "recipient is empty")
	}

	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		return errors.Wrapf(ErrInvalidTransaction, "amount must be positive, got %v", t.Amount)
	}

	switch {
	case t.Issuer == "" && t.From == "":
		return errors.Wrap(ErrInvalidTransaction, "sender is empty")
	case t.Issuer != "" && t.Issuer != RewardIssuer:
		return errors.Wrapf(ErrInvalidTransaction, "unknown issuer %q", t.Issuer)
	case t.Issuer != "" && t.From != "":
		return errors.Wrap(ErrInvalidTransaction, "reward cannot have a sender")
	}

	return nil
}

// sender is the value folded into the digest for the sending side
func (t *Tx) sender() string {
	if t.IsReward() {
		return t.Issuer
	}

	return t.From
}

// Hash digests sender, recipient, amount and timestamp
func (t *Tx) Hash() string {
	var b strings.Builder

	b.WriteString(t.sender())
	b.WriteByte('|')
	b.WriteString(t.To)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(t.Amount, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(t.Ts.UTC().Format(TimeFormat))

	return cryptography.HexDigest([]byte(b.String()))
}

func (t *Tx) Clone() *Tx {
	if t == nil {
		return nil
	}

	c := *t
	return &c
}

func (t *Tx) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling tx")
	}

	return b, nil
}

func (t *Tx) Unmarshal(b []byte) error {
	if err := msgpack.Unmarshal(b, t); err != nil {
		return errors.Wrap(err, "unmarshaling tx")
	}

	t.Ts = t.Ts.UTC()

	return t.Validate()
}
