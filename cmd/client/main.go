// Command client is an interactive shell that connects to the
// Manager, gets routed to a Storage node, and issues get/put/del
// commands against it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dreamware/kvstore/internal/client"
	"github.com/dreamware/kvstore/internal/logging"
	"github.com/dreamware/kvstore/internal/wire"
)

func main() {
	managerEndpoint := pflag.String("manager", "localhost:50051", "Manager host:port")
	logJSON := pflag.Bool("log-json", false, "emit logs as JSON")
	pflag.Parse()

	logging.Init(logging.Config{JSONOutput: *logJSON})
	log := logging.WithComponent("client")
	ctx := context.Background()

	managerClient, closeManager, err := wire.DialManager(*managerEndpoint)
	if err != nil {
		fmt.Fprintln(os.Stderr, "连接管理服务器时发生错误:", err)
		os.Exit(1)
	}
	defer closeManager()

	c, err := client.Connect(ctx, managerClient, wire.DialStorage, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "连接管理服务器时发生错误:", err)
		os.Exit(1)
	}

	shell := client.NewShell(ctx, c)
	if err := shell.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
