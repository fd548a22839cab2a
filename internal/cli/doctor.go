package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/omarhani/rafiq/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: snapshot blob parses
	if err := checkSnapshotBlob(ctx); err != nil {
		fmt.Printf("❌ Snapshot blob: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Snapshot blob: OK\n")
	}

	// Check 2: data validation
	result := validation.New().ValidateSnapshot(ctx.Store.Read())
	if result.HasConflicts() {
		fmt.Printf("⚠ Data validation: %d conflict(s), run 'rafiq validate' for details\n", len(result.Conflicts))
	} else {
		fmt.Printf("✓ Data validation: OK\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: cloud backend reachable
	if ctx.Engine == nil {
		fmt.Printf("⊘ Cloud backend: SKIPPED (not configured)\n")
	} else if err := checkCloudReachable(ctx); err != nil {
		fmt.Printf("❌ Cloud backend: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Cloud backend: OK\n")
	}

	// Check 5: no concurrent rafiq processes writing the same blob
	if others, err := findOtherInstances(); err != nil {
		fmt.Printf("⊘ Concurrent instances: SKIPPED (%v)\n", err)
	} else if len(others) > 0 {
		fmt.Printf("⚠ Concurrent instances: WARNING\n")
		fmt.Printf("   %d other rafiq process(es) running (pids %v); last write wins on the snapshot blob\n", len(others), others)
	} else {
		fmt.Printf("✓ Concurrent instances: OK\n")
	}

	// Check 6: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSnapshotBlob(ctx *Context) error {
	data, err := os.ReadFile(ctx.Store.Path())
	if os.IsNotExist(err) {
		// First run, the seeded plan hasn't been persisted yet.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("snapshot blob is not valid JSON")
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.Backups.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider 'rafiq backup create'")
	}
	return nil
}

func checkCloudReachable(ctx *Context) error {
	if !ctx.Session.Active() {
		return fmt.Errorf("no active profile, use 'rafiq user switch'")
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	return ctx.Engine.Probe(reqCtx)
}

func findOtherInstances() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() != self && p.Executable() == "rafiq" {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2024 {
		return fmt.Errorf("system clock reads %s, timestamps and sync ordering will be wrong", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset %d seconds is out of range", offset)
	}
	return nil
}
