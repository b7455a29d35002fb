package payrollrun

import (
	"context"
	"sync"

	"github.com/ekowhinson/HRMS-sub004/internal/engine"
)

const defaultWorkers = 4

// computeAll fans the employee list out over a bounded worker pool and runs
// the engine once per employee. Results come back in input order so a run
// produces identical output regardless of scheduling. Each computation is
// isolated: one employee failing never stops the others.
func computeAll(
	ctx context.Context,
	employees []engine.EmployeeSnapshot,
	period engine.PayPeriod,
	cfg engine.PayrollPolicyConfig,
	workers int,
) []engine.PayrollComputationResult {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(employees) {
		workers = len(employees)
	}

	results := make([]engine.PayrollComputationResult, len(employees))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = engine.Compute(employees[i], period, cfg)
			}
		}()
	}

	for i := range employees {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
