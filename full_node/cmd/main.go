package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/network"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/Luismorlan/ledger_in_go/visualize"
	"github.com/Luismorlan/ledger_in_go/wallet"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	listenAddr string
	keyPath    string
	createKey  bool
	rounds     int
)

var rootCmd = &cobra.Command{
	Use:          "full_node",
	Short:        "Run a ledger full node or a local simulation",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one full node over gRPC with a command console on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		w, err := wallet.LoadWallet(keyPath, createKey, logger)
		if err != nil {
			return err
		}
		node, err := full_node.NewFullNode(cfg, w, logger)
		if err != nil {
			return err
		}

		lis, err := net.Listen("tcp", cfg.ListenAddr)
		if err != nil {
			return errors.Wrapf(err, "failed to listen on %s", cfg.ListenAddr)
		}
		grpcServer, served := full_node.NewFullNodeServer(node).Serve(lis)
		defer grpcServer.GracefulStop()
		logger.Info("full node started", zap.String("address", node.Address()))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		console := NewConsole(node, os.Stdout, logger)
		go console.ParseCommand(ctx, os.Stdin)
		go console.HandleCommand(ctx)

		select {
		case <-ctx.Done():
			return nil
		case err := <-served:
			return err
		}
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Mine on several local nodes that share transactions, then print a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		n, err := network.NewNetwork(cfg, prometheus.NewRegistry(), logger)
		if err != nil {
			return err
		}
		nodes := n.Nodes()
		// Fund every node once so the transfers below have something to move.
		if _, err := n.MineRound(); err != nil {
			return err
		}
		for i := range nodes {
			if _, err := n.Transfer(i, (i+1)%len(nodes), cfg.Reward/10, "simulated transfer"); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := n.Run(ctx, rounds); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		table, err := n.ReportTable()
		if err != nil {
			return err
		}
		fmt.Println(table)
		blocks, err := nodes[0].Blocks()
		if err != nil {
			return err
		}
		chain, err := visualize.ChainTable(blocks)
		if err != nil {
			return err
		}
		fmt.Println(chain)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config_path", "", "path to the yaml config, defaults are used when empty")
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to serve gRPC on, overrides listen_addr")
	serveCmd.Flags().StringVar(&keyPath, "key_path", "/tmp/ledger.key", "file holding the miner's private key")
	serveCmd.Flags().BoolVar(&createKey, "create_key", false, "generate a new key and save it to key_path")
	simulateCmd.Flags().IntVar(&rounds, "rounds", 5, "mining rounds to run, 0 runs until interrupted")
	rootCmd.AddCommand(serveCmd, simulateCmd)
}

func setup() (config.AppConfig, *zap.Logger, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, nil, err
		}
	}
	logger, err := utils.NewLogger(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
