// Command storage runs a single Storage node: it registers with the
// Manager, then serves client and Manager RPCs until interrupted.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	"github.com/dreamware/kvstore/internal/logging"
	"github.com/dreamware/kvstore/internal/storage"
	"github.com/dreamware/kvstore/internal/wire"
)

func main() {
	ip := pflag.String("ip", "localhost", "address this node advertises and listens on")
	port := pflag.String("port", strconv.Itoa(20000+rand.IntN(45535)), "port this node advertises and listens on")
	cacheSize := pflag.Int("cache", 5, "in-memory cache capacity")
	savePath := pflag.String("savepath", "storage/", "parent directory for this node's data directory")
	clear := pflag.Bool("clear", false, "remove the data directory on shutdown")
	managerEndpoint := pflag.String("manager", "localhost:50051", "Manager host:port")
	logJSON := pflag.Bool("log-json", false, "emit logs as JSON")
	pflag.Parse()

	logging.Init(logging.Config{JSONOutput: *logJSON})
	log := logging.WithComponent("storage")
	ctx := context.Background()

	managerClient, closeManager, err := wire.DialManager(*managerEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("无法连接管理服务器")
	}
	defer closeManager()

	onlineResp, err := managerClient.Online(ctx, &wire.OnlineRequest{Host: *ip, Port: *port})
	if err != nil {
		log.Fatal().Err(err).Msg("无法连接管理服务器")
	}
	if !onlineResp.Errno {
		log.Fatal().Str("errmes", onlineResp.Errmes).Msg("注册失败")
	}
	serverID := onlineResp.ServerID
	log = logging.WithServerID(serverID)

	dataDir := filepath.Join(*savePath, fmt.Sprintf("storage_%d", serverID))
	node, err := storage.New(serverID, dataDir, *cacheSize, managerClient, log)
	if err != nil {
		log.Fatal().Err(err).Msg("无法初始化本地存储")
	}

	grpcServer := grpc.NewServer()
	wire.RegisterStorageServer(grpcServer, storage.NewServer(node))

	listenAddr := *ip + ":" + *port
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", listenAddr).Msg("无法监听端口")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("接收到中断信号, 正在注销...")
		if _, err := managerClient.Offline(ctx, &wire.OfflineRequest{ServerID: serverID}); err != nil {
			log.Warn().Err(err).Msg("注销时连接管理服务器失败")
		}
		grpcServer.GracefulStop()
		if *clear {
			if err := os.RemoveAll(dataDir); err != nil {
				log.Warn().Err(err).Msg("清理数据目录失败")
			}
		}
	}()

	log.Info().Str("addr", listenAddr).Int32("server_id", serverID).Msg("开始进行服务")
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("grpc 服务异常退出")
	}
}
