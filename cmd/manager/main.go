// Command manager runs the Manager coordinator: the registry of live
// Storage nodes and connected clients, two-phase write coordination,
// quorum reads, and the heartbeat liveness loop.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/dreamware/kvstore/internal/logging"
	"github.com/dreamware/kvstore/internal/manager"
	"github.com/dreamware/kvstore/internal/wire"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "manager",
	Short: "Manager coordinates a kvstore cluster of Storage nodes",
	RunE:  runManager,
}

func init() {
	rootCmd.PersistentFlags().String("ip", "localhost", "address to listen on")
	rootCmd.PersistentFlags().String("port", "50051", "port to listen on")
	rootCmd.PersistentFlags().Int("heartbeat-interval", 10, "seconds between liveness probes")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	cobra.OnInitialize(initLogging)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOut, _ := rootCmd.PersistentFlags().GetBool("log-json")
	logging.Init(logging.Config{Level: logging.Level(level), JSONOutput: jsonOut})
}

func runManager(cmd *cobra.Command, _ []string) error {
	ip, _ := cmd.Flags().GetString("ip")
	port, _ := cmd.Flags().GetString("port")
	heartbeatSeconds, _ := cmd.Flags().GetInt("heartbeat-interval")

	log := logging.WithComponent("manager")
	mgr := manager.New(wire.DialStorage, log)

	grpcServer := grpc.NewServer()
	wire.RegisterManagerServer(grpcServer, manager.NewServer(mgr))

	addr := ip + ":" + port
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go mgr.RunHeartbeat(ctx, time.Duration(heartbeatSeconds)*time.Second)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("接收到中断信号, 正在关闭...")
		cancel()
		grpcServer.GracefulStop()
	}()

	log.Info().Str("addr", addr).Int("heartbeat_interval", heartbeatSeconds).Msg("manager 开始进行服务")
	return grpcServer.Serve(lis)
}
