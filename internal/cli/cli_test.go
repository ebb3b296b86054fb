package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/powledger/internal/config"
	"github.com/tcfw/powledger/internal/export"
	"github.com/tcfw/powledger/pkg/ledger"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func testShell(t *testing.T) (*shell, *bytes.Buffer) {
	l, err := ledger.New(ledger.WithDifficulty(1), ledger.WithMiningReward(10))
	require.NoError(t, err)

	var out bytes.Buffer
	exp := &config.Export{Dir: t.TempDir(), Format: export.FormatJSON}

	return newShell(l, exp, &out), &out
}

func execAll(t *testing.T, s *shell, lines ...string) {
	for _, line := range lines {
		_, err := s.exec(context.Background(), line)
		require.NoError(t, err, line)
	}
}

func TestShellFlow(t *testing.T) {
	s, out := testShell(t)

	execAll(t, s, "mine alice", "mine alice", "balance alice")
	assert.Contains(t, out.String(), "alice 10\n")

	out.Reset()
	execAll(t, s, "send alice bob 4")
	assert.True(t, strings.HasPrefix(out.String(), "queued "))
	hash := strings.TrimSpace(strings.TrimPrefix(out.String(), "queued "))

	out.Reset()
	execAll(t, s, "pending")
	assert.Contains(t, out.String(), "bob")
	assert.Contains(t, out.String(), "mining-reward")

	execAll(t, s, "mine carol")

	out.Reset()
	execAll(t, s, "find "+hash)
	assert.Contains(t, out.String(), "block 3: alice -> bob 4")

	out.Reset()
	execAll(t, s, "balances")
	assert.Contains(t, out.String(), "Address")
	assert.Contains(t, out.String(), "16")

	out.Reset()
	execAll(t, s, "chain", "verify")
	assert.Contains(t, out.String(), "Nonce")
	assert.Contains(t, out.String(), "chain valid")
}

func TestShellRejected(t *testing.T) {
	s, _ := testShell(t)

	_, err := s.exec(context.Background(), "send alice bob 5")
	assert.True(t, errors.Is(err, ledger.ErrValidationFailure))
	assert.Empty(t, s.l.PendingTransactions())

	_, err = s.exec(context.Background(), "send alice bob lots")
	assert.Error(t, err)
}

func TestShellUsage(t *testing.T) {
	s, _ := testShell(t)

	for _, line := range []string{"send alice", "mine", "balance", "find", "block", "dance"} {
		_, err := s.exec(context.Background(), line)
		assert.True(t, errors.Is(err, errUsage), line)
	}

	quit, err := s.exec(context.Background(), "  ")
	assert.NoError(t, err)
	assert.False(t, quit)

	quit, err = s.exec(context.Background(), "QUIT")
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestShellExport(t *testing.T) {
	s, out := testShell(t)
	execAll(t, s, "mine alice", "export")

	path := strings.TrimSpace(strings.TrimPrefix(out.String()[strings.LastIndex(out.String(), "wrote "):], "wrote "))

	snap, err := export.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, snap.Blocks, 2)
}

func TestDemo(t *testing.T) {
	l, err := ledger.New(ledger.WithDifficulty(1), ledger.WithMiningReward(10))
	require.NoError(t, err)

	var out bytes.Buffer
	exp := &config.Export{Dir: t.TempDir(), Format: export.FormatYAML}

	path, err := demo(context.Background(), l, exp, &out)
	if err != nil {
		t.Fatal(err)
	}

	assert.Contains(t, out.String(), "Alice balance 100\n")
	assert.Contains(t, out.String(), "chain valid")

	snap, err := export.Read(path)
	if err != nil {
		t.Fatal(err)
	}

	assert.Len(t, snap.Blocks, demoBlocks+2)
	assert.Equal(t, map[string]float64{"Alice": 60, "Bob": 50}, snap.Balances)
	assert.True(t, snap.Valid)

	var verifyOut bytes.Buffer
	verifyCmd.SetOut(&verifyOut)
	assert.NoError(t, runVerify(verifyCmd, []string{path}))
	assert.Contains(t, verifyOut.String(), "chain valid")
}

func TestVerifyTamperedFile(t *testing.T) {
	s, _ := testShell(t)
	execAll(t, s, "mine alice", "mine alice")

	snap := s.l.Snapshot()
	snap.Blocks[1].Nonce++

	path, err := export.Write(t.TempDir(), export.FormatMsgpack, snap)
	require.NoError(t, err)

	var out bytes.Buffer
	verifyCmd.SetOut(&out)
	err = runVerify(verifyCmd, []string{path})
	assert.True(t, errors.Is(err, ledger.ErrChainIntegrity))
	assert.Contains(t, out.String(), "chain invalid")
}

func TestShellFindReward(t *testing.T) {
	s, out := testShell(t)
	execAll(t, s, "mine alice", "mine bob")

	b, err := s.l.Block(2)
	require.NoError(t, err)
	require.Len(t, b.Transactions, 1)

	out.Reset()
	execAll(t, s, "find "+b.Transactions[0].Hash())
	assert.Equal(t, "block 2: mining-reward -> alice 10\n", out.String())
}

func TestShellBlock(t *testing.T) {
	s, out := testShell(t)
	execAll(t, s, "mine alice", "mine alice")

	b, err := s.l.Block(2)
	require.NoError(t, err)
	id, err := b.CID()
	require.NoError(t, err)

	out.Reset()
	execAll(t, s, "block 2")
	byIndex := out.String()
	assert.Contains(t, byIndex, "cid   "+id.String())
	assert.Contains(t, byIndex, b.Hash)
	assert.Contains(t, byIndex, "mining-reward")

	out.Reset()
	execAll(t, s, "block "+id.String())
	assert.Equal(t, byIndex, out.String())

	_, err = s.exec(context.Background(), "block 42")
	assert.Error(t, err)
}

func TestFindInFile(t *testing.T) {
	s, _ := testShell(t)
	execAll(t, s, "mine alice", "mine alice", "send alice bob 3", "mine alice")

	path, err := export.Write(t.TempDir(), export.FormatJSON, s.l.Snapshot())
	require.NoError(t, err)

	b, err := s.l.Block(3)
	require.NoError(t, err)
	require.Len(t, b.Transactions, 2)

	var out bytes.Buffer
	findCmd.SetOut(&out)
	require.NoError(t, runFind(findCmd, []string{path, b.Transactions[1].Hash()}))
	assert.Equal(t, "block 3: alice -> bob 3\n", out.String())

	err = runFind(findCmd, []string{path, "missing"})
	assert.Error(t, err)
}
