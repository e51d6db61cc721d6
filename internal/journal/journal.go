// Package journal provides the append-only activity log the router
// core writes one record to per table mutation or forwarding decision.
// The log is the only state that survives a restart; the routing table
// itself is rebuilt from scratch each run.
package journal

import (
	"fmt"
	"os"
	"sync"

	"github.com/netsimlab/routesim/internal/routing/entities"
)

// Sink is a write-only append destination accepting one text line per
// event. Keeping it as an interface leaves the core free of file-system
// concerns and lets tests substitute an in-memory sink.
type Sink interface {
	Append(line string) error
	Close() error
}

// FileSink appends records to a log file. The file is opened once at
// startup with append semantics and held for the process lifetime.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (or creates) the activity log at the given path
func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity log %s: %w", path, err)
	}
	return &FileSink{file: file}, nil
}

// Append writes one record line to the log
func (s *FileSink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.file.WriteString(line + "\n")
	return err
}

// Close closes the underlying log file
func (s *FileSink) Close() error {
	return s.file.Close()
}

// MemorySink collects records in memory for tests
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

// Append records one line
func (s *MemorySink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Close implements Sink; a MemorySink holds no resources
func (s *MemorySink) Close() error {
	return nil
}

// Lines returns a copy of the recorded lines
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Record constructors for the recognized event kinds.

// RouteAdded renders an ADD record
func RouteAdded(route entities.Route) string {
	return fmt.Sprintf("ADD %s via %s metric %d", route.Network, route.Gateway, route.Metric)
}

// RouteDeleted renders a DEL record
func RouteDeleted(network entities.Address) string {
	return fmt.Sprintf("DEL %s", network)
}

// PacketForwarded renders a FWD record
func PacketForwarded(packet entities.Packet, gateway entities.Address) string {
	return fmt.Sprintf("FWD %s via %s", packet, gateway)
}

// PacketDropped renders a DROP record
func PacketDropped(packet entities.Packet) string {
	return fmt.Sprintf("DROP %s", packet)
}
