package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// Shell is the interactive REPL described in spec.md §6: get/put/del/
// change/help/exit, tokenized on whitespace.
type Shell struct {
	c     *Client
	ctx   context.Context
	liner *liner.State
}

// NewShell wraps c for interactive use.
func NewShell(ctx context.Context, c *Client) *Shell {
	return &Shell{c: c, ctx: ctx}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kvstore_history")
}

// Run starts the REPL loop; it returns nil on a clean exit.
func (s *Shell) Run() error {
	s.liner = liner.NewLiner()
	defer s.liner.Close()

	s.liner.SetCtrlCAborts(true)
	s.liner.SetCompleter(s.completer)

	if f, err := os.Open(historyFile()); err == nil {
		s.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("kvstore client (id=%d, node=%s)\n", s.c.ID(), s.c.Endpoint())
	fmt.Println("Type 'help' for available commands.")

	for {
		line, err := s.liner.Prompt("kvstore> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			s.saveHistory()
			return nil
		case "help", "?":
			s.printHelp()
		case "get":
			s.cmdGet(args)
		case "put":
			s.cmdPut(args)
		case "del", "delete":
			s.cmdDel(args)
		case "change":
			s.cmdChange(args)
		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	s.saveHistory()
	return nil
}

func (s *Shell) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		s.liner.WriteHistory(f)
		f.Close()
	}
}

func (s *Shell) completer(line string) []string {
	commands := []string{"get", "put", "del", "delete", "change", "help", "exit", "quit", "q"}
	var out []string
	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			out = append(out, cmd)
		}
	}
	return out
}

func (s *Shell) printHelp() {
	fmt.Println("commands:")
	fmt.Println("  get <key>             fetch a value")
	fmt.Println("  put <key> <value>     store a value")
	fmt.Println("  del <key>             remove a value")
	fmt.Println("  change [endpoint]     switch storage node (random if no endpoint)")
	fmt.Println("  help                  this text")
	fmt.Println("  exit                  quit")
}

func (s *Shell) cmdGet(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: get <key>")
		return
	}
	v, err := s.c.Get(s.ctx, args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(string(v))
}

func (s *Shell) cmdPut(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: put <key> <value>")
		return
	}
	if err := s.c.Put(s.ctx, args[0], []byte(args[1])); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("ok")
}

func (s *Shell) cmdDel(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: del <key>")
		return
	}
	if err := s.c.Del(s.ctx, args[0]); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("ok")
}

func (s *Shell) cmdChange(args []string) {
	switch len(args) {
	case 0:
		if err := s.c.reconnect(s.ctx); err != nil {
			fmt.Println("error:", err)
			return
		}
	case 1:
		host, port, ok := strings.Cut(args[0], ":")
		if !ok {
			fmt.Println("usage: change <host:port>")
			return
		}
		if err := s.c.ChangeTo(s.ctx, host, port); err != nil {
			fmt.Println("error:", err)
			return
		}
	default:
		fmt.Println("usage: change [host:port]")
		return
	}
	fmt.Println("now connected to", s.c.Endpoint())
}
