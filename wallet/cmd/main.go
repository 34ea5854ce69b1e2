package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Luismorlan/ledger_in_go/client"
	"github.com/Luismorlan/ledger_in_go/wallet"
	"github.com/spf13/cobra"
)

var (
	keyPath  string
	nodeAddr string
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "wallet",
	Short:        "Manage a ledger key and query a full node",
	SilenceUsage: true,
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new key and save it to key_path",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.LoadWallet(keyPath, true, nil)
		if err != nil {
			return err
		}
		fmt.Println(w.Address())
		return nil
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address of the key at key_path",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.LoadWallet(keyPath, false, nil)
		if err != nil {
			return err
		}
		fmt.Println(w.Address())
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Ask a full node for the balance of an address, the wallet's own by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var address string
		if len(args) == 1 {
			address = args[0]
		} else {
			w, err := wallet.LoadWallet(keyPath, false, nil)
			if err != nil {
				return err
			}
			address = w.Address()
		}

		c, err := client.NewClient(nodeAddr)
		if err != nil {
			return err
		}
		defer c.Close()
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		balance, err := c.Balance(ctx, address)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d\n", address, balance)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&keyPath, "key_path", "/tmp/ledger.key", "file holding your private key")
	balanceCmd.Flags().StringVar(&nodeAddr, "node", "localhost:10000", "full node to query")
	balanceCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	rootCmd.AddCommand(keygenCmd, addressCmd, balanceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
