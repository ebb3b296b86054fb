package storage

import (
	"strings"
	"time"

	"github.com/tcfw/powledger/pkg/cryptography"
	"github.com/tcfw/powledger/pkg/tx"
)

// GenesisPrevHash is the sentinel parent of the genesis block
var GenesisPrevHash = strings.Repeat("0", cryptography.HexDigestLen)

// GenesisTime is fixed so every chain starts from the same genesis hash
var GenesisTime = time.Unix(0, 0).UTC()

func NewGenesisBlock() *Block {
	return NewBlock(0, GenesisTime, []*tx.Tx{}, GenesisPrevHash)
}
