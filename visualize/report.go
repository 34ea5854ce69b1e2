package visualize

import (
	"strconv"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/pterm/pterm"
)

// NodeRow is one line of the simulation report.
type NodeRow struct {
	ID      string
	Address string
	Height  int64
	Balance model.Money
	// Transactions in the last block.
	LastBlockTxs int
	Valid        bool
}

// NodeTable renders one row per node.
func NodeTable(rows []NodeRow) (string, error) {
	data := pterm.TableData{{"Node", "Address", "Height", "Balance", "Last block txs", "Valid"}}
	for _, r := range rows {
		data = append(data, []string{
			shortenString(r.ID),
			shortenString(r.Address),
			strconv.FormatInt(r.Height, 10),
			r.Balance.String(),
			strconv.Itoa(r.LastBlockTxs),
			strconv.FormatBool(r.Valid),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// ChainTable renders one row per block.
func ChainTable(blocks []*model.Block) (string, error) {
	data := pterm.TableData{{"Index", "Hash", "Previous", "Nonce", "Txs"}}
	for _, b := range blocks {
		data = append(data, []string{
			strconv.FormatInt(b.Index, 10),
			shortenString(b.Hash),
			shortenString(b.PreviousHash),
			strconv.FormatInt(b.Nonce, 10),
			strconv.Itoa(len(b.Transactions)),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
