// Package trace replays packet trace files against the simulator core,
// evaluating forwarding decisions on a bounded worker pool.
package trace

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/netsimlab/routesim/internal/logger"
	"github.com/netsimlab/routesim/internal/router"
)

// Result summarizes a replayed packet trace
type Result struct {
	Packets   int
	Forwarded int
	Dropped   int
	Malformed int
}

// Run replays the trace file line by line. Each line is
// "source destination protocol"; blank lines and '#' comments are
// skipped. Decisions are evaluated concurrently, which the table's
// locking makes safe; every decision is journaled through the core as
// usual.
func Run(r *router.Router, path string, concurrency int, log *logger.Logger) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer file.Close()

	pool, err := ants.NewPool(concurrency)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	log = log.WithComponent("trace")

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result Result
	)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			log.Warn("Skipping malformed trace line", "line", lineNo)
			mu.Lock()
			result.Packets++
			result.Malformed++
			mu.Unlock()
			continue
		}

		source, destination, protocol := fields[0], fields[1], fields[2]
		no := lineNo
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			outcome, err := r.Forward(source, destination, protocol)
			if err != nil {
				log.Warn("Skipping unparseable trace packet", "line", no, "error", err)
			}

			mu.Lock()
			defer mu.Unlock()
			result.Packets++
			switch {
			case err != nil:
				result.Malformed++
			case outcome.Decision.Forwarded:
				result.Forwarded++
			default:
				result.Dropped++
			}
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return Result{}, fmt.Errorf("failed to submit trace job: %w", submitErr)
		}
	}

	wg.Wait()
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("failed to read trace file: %w", err)
	}
	return result, nil
}
