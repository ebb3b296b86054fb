package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/tcfw/powledger/pkg/storage"
	"github.com/tcfw/powledger/pkg/tx"
)

func renderTable(w io.Writer, data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, s)
	return err
}

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16]
	}
	return h
}

func sender(t *tx.Tx) string {
	if t.IsReward() {
		return pterm.LightYellow(t.Issuer)
	}
	return t.From
}

func printChain(w io.Writer, blocks []*storage.Block) error {
	data := pterm.TableData{{"Index", "Timestamp", "Prev", "Hash", "Nonce", "Txs"}}
	for _, b := range blocks {
		data = append(data, []string{
			strconv.FormatUint(b.Index, 10),
			b.Timestamp.Format(time.RFC3339),
			shortHash(b.PrevHash),
			shortHash(b.Hash),
			strconv.FormatUint(b.Nonce, 10),
			strconv.Itoa(len(b.Transactions)),
		})
	}

	return renderTable(w, data)
}

func printBlock(w io.Writer, b *storage.Block) error {
	id, err := b.CID()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "block %d\n  cid   %s\n  hash  %s\n  prev  %s\n  nonce %d\n  time  %s\n",
		b.Index, id, b.Hash, b.PrevHash, b.Nonce, b.Timestamp.Format(time.RFC3339Nano))

	return printTxs(w, b.Transactions)
}

func printTxs(w io.Writer, txs []*tx.Tx) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "no transactions")
		return err
	}

	data := pterm.TableData{{"Sender", "Recipient", "Amount", "Timestamp", "Hash"}}
	for _, t := range txs {
		data = append(data, []string{
			sender(t),
			t.To,
			formatAmount(t.Amount),
			t.Ts.Format(time.RFC3339Nano),
			shortHash(t.Hash()),
		})
	}

	return renderTable(w, data)
}

func printBalances(w io.Writer, balances map[string]float64) error {
	if len(balances) == 0 {
		_, err := fmt.Fprintln(w, "no balances")
		return err
	}

	addrs := make([]string, 0, len(balances))
	for a := range balances {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)

	data := pterm.TableData{{"Address", "Balance"}}
	for _, a := range addrs {
		data = append(data, []string{a, formatAmount(balances[a])})
	}

	return renderTable(w, data)
}

func printValidity(w io.Writer, err error) {
	if err != nil {
		fmt.Fprint(w, pterm.Error.Sprintfln("chain invalid: %s", err))
		return
	}

	fmt.Fprint(w, pterm.Success.Sprintfln("chain valid"))
}
