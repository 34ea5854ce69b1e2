package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/visualize"
	"go.uber.org/zap"
)

// Console runs the commands typed into a serving full node.
type Console struct {
	node   *full_node.FullNode
	out    io.Writer
	logger *zap.Logger
	cmd    chan commands.Command

	// Cancels the running mining loop, nil when not mining.
	m          sync.Mutex
	stopMining context.CancelFunc
}

func NewConsole(node *full_node.FullNode, out io.Writer, logger *zap.Logger) *Console {
	return &Console{
		node:   node,
		out:    out,
		logger: logger,
		cmd:    make(chan commands.Command),
	}
}

// Parse command from in until it is exhausted or ctx is done.
func (c *Console) ParseCommand(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(c.out, "> ")
	for scanner.Scan() {
		cmd, err := commands.CreateCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.out, err)
			fmt.Fprint(c.out, "> ")
			continue
		}
		select {
		case c.cmd <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Console) HandleCommand(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.stop()
			return
		case cmd := <-c.cmd:
			c.Execute(ctx, cmd)
			fmt.Fprint(c.out, "> ")
		}
	}
}

// Execute runs one command and prints its outcome.
func (c *Console) Execute(ctx context.Context, cmd commands.Command) {
	switch cmd.Op {
	case commands.START:
		c.start(ctx)
	case commands.STOP:
		if !c.stop() {
			fmt.Fprintln(c.out, "no running mining task to stop")
		}
	case commands.MINE:
		b, err := c.node.CreateNewBlock()
		if err != nil {
			fmt.Fprintln(c.out, "failed to mine:", err)
			return
		}
		fmt.Fprintf(c.out, "mined block %d with hash %s\n", b.Index, b.Hash)
	case commands.SHOW:
		blocks, err := c.node.Blocks()
		if err != nil {
			fmt.Fprintln(c.out, "failed to snapshot chain:", err)
			return
		}
		path, err := visualize.RenderToFile(os.TempDir(), c.node.ID(), blocks, cmd.Depth())
		if err != nil {
			fmt.Fprintln(c.out, "failed to render:", err)
			return
		}
		fmt.Fprintln(c.out, "rendered chain to", path)
	case commands.BALANCE:
		address := c.node.Address()
		if len(cmd.Args) == 1 {
			address = cmd.Args[0]
		}
		balance, err := c.node.GetBalance(address)
		if err != nil {
			fmt.Fprintln(c.out, "failed to get balance:", err)
			return
		}
		fmt.Fprintf(c.out, "balance of %s is %s\n", address, balance)
	case commands.HEIGHT:
		fmt.Fprintln(c.out, "height is", c.node.GetHeight())
	case commands.VALIDATE:
		reasons := c.node.Validate()
		if len(reasons) == 0 {
			fmt.Fprintln(c.out, "chain is valid")
			return
		}
		fmt.Fprintln(c.out, "chain is invalid:")
		for _, r := range reasons {
			fmt.Fprintln(c.out, " ", r)
		}
	case commands.TRANSFER:
		tx, err := c.node.Transfer(cmd.Args[0], cmd.Amount(), "console transfer")
		if err != nil {
			fmt.Fprintln(c.out, "failed to transfer:", err)
			return
		}
		fmt.Fprintln(c.out, "queued", tx)
	default:
		fmt.Fprintln(c.out, "unrecognized command:", cmd)
	}
}

// start mines blocks back to back until stopped.
func (c *Console) start(ctx context.Context) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.stopMining != nil {
		fmt.Fprintln(c.out, "mining has already been started")
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.stopMining = cancel
	go func() {
		for ctx.Err() == nil {
			b, err := c.node.CreateNewBlock()
			if err != nil {
				c.logger.Error("failed to mine, mining stopped", zap.Error(err))
				return
			}
			c.logger.Info("mined block", zap.Int64("index", b.Index), zap.String("hash", b.Hash))
		}
	}()
	fmt.Fprintln(c.out, "mining started")
}

// stop reports whether a mining loop was running.
func (c *Console) stop() bool {
	c.m.Lock()
	defer c.m.Unlock()
	if c.stopMining == nil {
		return false
	}
	c.stopMining()
	c.stopMining = nil
	return true
}
