// Package shell implements the line-oriented command interpreter that
// drives the simulator core. Each command is read, fully processed and
// answered before the next line is read; a failed command reports its
// error and leaves the session running.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/netsimlab/routesim/internal/logger"
	"github.com/netsimlab/routesim/internal/router"
)

type Shell struct {
	router *router.Router
	in     io.Reader
	out    io.Writer
	log    *logger.Logger
}

// New creates a shell reading commands from in and writing replies to out
func New(r *router.Router, in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	return &Shell{
		router: r,
		in:     in,
		out:    out,
		log:    log.WithComponent("shell"),
	}
}

// Run processes commands until exit or end of input
func (s *Shell) Run() error {
	s.printHelp()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "\n> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		op, args := fields[0], fields[1:]
		switch op {
		case "add":
			s.handleAdd(args)
		case "del":
			s.handleDelete(args)
		case "show":
			s.handleShow()
		case "send":
			s.handleSend(args)
		case "help":
			s.printHelp()
		case "exit":
			return nil
		default:
			fmt.Fprintln(s.out, "Unknown command. Type 'help' to list available commands.")
		}
	}
	return scanner.Err()
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "=== IP Router Simulator ===")
	fmt.Fprintln(s.out, "Available commands:")
	fmt.Fprintln(s.out, "  add <network> <gateway> <metric>  - add a route (e.g. add 192.168.1.0/24 192.168.1.1 10)")
	fmt.Fprintln(s.out, "  del <network>                     - delete a route (e.g. del 192.168.1.0/24)")
	fmt.Fprintln(s.out, "  show                              - show the routing table")
	fmt.Fprintln(s.out, "  send <source> <dest> <protocol>   - send a packet (e.g. send 10.0.0.1 192.168.1.100 ICMP)")
	fmt.Fprintln(s.out, "  help                              - show this help")
	fmt.Fprintln(s.out, "  exit                              - quit")
}

func (s *Shell) handleAdd(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.out, "Usage: add <network> <gateway> <metric>")
		return
	}

	metric, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Fprintf(s.out, "Error: metric must be an integer, got %q\n", args[2])
		return
	}

	route, err := s.router.AddRoute(args[0], args[1], metric)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Route added: %s\n", route)
}

func (s *Shell) handleDelete(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: del <network>")
		return
	}

	removed, err := s.router.DeleteRoute(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if removed > 0 {
		fmt.Fprintf(s.out, "Removed %d route(s).\n", removed)
	} else {
		fmt.Fprintln(s.out, "No matching route found.")
	}
}

func (s *Shell) handleShow() {
	lines := s.router.ListRoutes()
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "The routing table is empty.")
		return
	}

	fmt.Fprintln(s.out, "Current routing table:")
	for _, line := range lines {
		fmt.Fprintf(s.out, "  %s\n", line)
	}
}

func (s *Shell) handleSend(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.out, "Usage: send <source> <destination> <protocol>")
		return
	}

	outcome, err := s.router.Forward(args[0], args[1], args[2])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(s.out, outcome.Packet)
	if outcome.Decision.Forwarded {
		fmt.Fprintf(s.out, "Forwarding packet via gateway: %s\n", outcome.Decision.Gateway)
	} else {
		fmt.Fprintln(s.out, "Packet dropped (no matching route).")
	}
}
