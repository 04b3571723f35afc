package driver

import (
	"fmt"
	"time"
)

const progressInterval = 5 * time.Second

// runProgress prints the (iterations, failed_iterations) pair every 5
// seconds until the stop flag is set, then prints the final summary line
// and closes done. Adapted from the teacher's round-ticker pattern in
// pkg/fuzz/runner.go, trimmed to the single plain-text line spec.md §5/§6
// calls for instead of the teacher's TUI/JSON progress reporter.
func runProgress(d *Driver, done chan<- struct{}) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		if d.stopped() {
			fmt.Printf("Finished in %d iterations, %d failed iterations\n", d.Iterations(), d.FailedIterations())
			close(done)
			return
		}
		select {
		case <-ticker.C:
			fmt.Printf("(%d, %d)\n", d.Iterations(), d.FailedIterations())
		case <-time.After(200 * time.Millisecond):
			// Poll the stop flag more often than the 5-second report
			// interval so shutdown isn't delayed by a stale ticker wait.
		}
	}
}
