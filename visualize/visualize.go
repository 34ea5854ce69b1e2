package visualize

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/bradleyjkemp/memviz"
	"github.com/pkg/errors"
)

// We re-define the visualize model here so the graph only carries the fields worth looking
// at, in shortened form.
type transaction struct {
	hash   string
	from   string
	to     string
	amount int64
}

type block struct {
	index    int64
	hash     string
	prevHash string
	nonce    int64
	txs      []transaction
	next     *block
}

// The hashes and addresses are just too long to render, instead we take only first 3 and last 3
// characters and replace the middle part with '...'. E.g. "abcdefghi" will be rendered as "abc...ghi"
func shortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}

func txToTx(tx *model.Transaction) transaction {
	from := shortenString(tx.Sender)
	if tx.IsReward() {
		from = "reward"
	}
	return transaction{
		hash:   shortenString(tx.Hash),
		from:   from,
		to:     shortenString(tx.Recipient),
		amount: tx.Funds.Amount,
	}
}

func blockToBlock(b *model.Block) *block {
	n := &block{
		index:    b.Index,
		hash:     shortenString(b.Hash),
		prevHash: shortenString(b.PreviousHash),
		nonce:    b.Nonce,
	}
	for _, tx := range b.Transactions {
		n.txs = append(n.txs, txToTx(tx))
	}
	return n
}

// Build the linked list of the last d+1 blocks, oldest first.
func constructData(blocks []*model.Block, d int) *block {
	start := len(blocks) - 1 - d
	if start < 0 {
		start = 0
	}
	var head, prev *block
	for _, b := range blocks[start:] {
		n := blockToBlock(b)
		if prev == nil {
			head = n
		} else {
			prev.next = n
		}
		prev = n
	}
	return head
}

// Render writes the last d+1 blocks to w as a graphviz dot graph.
func Render(w io.Writer, blocks []*model.Block, d int) error {
	if len(blocks) == 0 {
		return errors.New("no block to render")
	}
	if d < 0 {
		return errors.Errorf("depth must not be negative, got %d", d)
	}
	chain := constructData(blocks, d)
	memviz.Map(w, chain)
	return nil
}

// RenderToFile writes the dot graph of node id into dir and returns its path. When the dot
// binary is installed a png is rendered next to it and its path is returned instead.
func RenderToFile(dir string, id string, blocks []*model.Block, d int) (string, error) {
	fileName := filepath.Join(dir, "chaindata-"+id)
	f, err := os.Create(fileName)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", fileName)
	}
	err = Render(f, blocks, d)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}

	dot, err := exec.LookPath("dot")
	if err != nil {
		return fileName, nil
	}
	outputName := filepath.Join(dir, "rendered-chain-"+id+".png")
	if err := exec.Command(dot, "-Tpng", fileName, "-o", outputName).Run(); err != nil {
		return "", errors.Wrap(err, "render png")
	}
	return outputName, nil
}
