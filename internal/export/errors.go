package export

import "github.com/pkg/errors"

var (
	ErrUnknownFormat = errors.New("unknown export format")
)
