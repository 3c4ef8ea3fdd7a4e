// Command kvs-client sends a single Get, Set, or Remove command to a
// kvs-server instance and prints the response, grounded on
// original_source/project-5/src/bin/kvs-client.rs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ignitekv/kvs/internal/protocol"
	"github.com/ignitekv/kvs/pkg/kvsclient"
	"github.com/ignitekv/kvs/pkg/options"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	sub := args[0]
	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	addr := fs.String("addr", options.DefaultListenAddr, "server address")

	var cmd protocol.Command
	switch sub {
	case "get":
		if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 1 {
			usage()
			return 1
		}
		cmd = protocol.NewGet(fs.Arg(0))

	case "set":
		if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 2 {
			usage()
			return 1
		}
		cmd = protocol.NewSet(fs.Arg(0), fs.Arg(1))

	case "rm":
		if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 1 {
			usage()
			return 1
		}
		cmd = protocol.NewRemove(fs.Arg(0))

	default:
		usage()
		return 1
	}

	client, err := kvsclient.Connect(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	resp, err := client.Send(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if !resp.Success {
		fmt.Fprintln(os.Stderr, resp.Message)
		return 1
	}
	if sub == "get" && resp.Message == "" {
		fmt.Println("Key not found")
		return 0
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kvs-client <get|set|rm> [--addr addr] <key> [value]")
}
