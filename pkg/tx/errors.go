package tx

import "github.com/pkg/errors"

var (
	ErrInvalidTransaction = errors.New("invalid transaction")
)
