package services

import (
	"context"
	"sort"

	"sysreport/internal/models"

	"github.com/shirou/gopsutil/v3/process"
)

// DefaultTopProcesses is how many processes a report lists by default.
const DefaultTopProcesses = 5

// Processes returns every readable process in enumeration order.
// Processes whose name cannot be read (exited, or owned by another user on
// some platforms) are skipped; unreadable CPU or memory figures count as 0.
func (p *HostProbe) Processes(ctx context.Context) ([]models.Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	processes := make([]models.Process, 0, len(procs))
	seenPIDs := make(map[int32]bool, len(procs))

	for _, proc := range procs {
		if seenPIDs[proc.Pid] {
			continue
		}
		seenPIDs[proc.Pid] = true

		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}

		cpuPercent, err := proc.CPUPercentWithContext(ctx)
		if err != nil {
			cpuPercent = 0
		}

		memPercent, err := proc.MemoryPercentWithContext(ctx)
		if err != nil {
			memPercent = 0
		}

		processes = append(processes, models.Process{
			PID:           proc.Pid,
			Name:          name,
			CPUPercent:    round1(cpuPercent),
			MemoryPercent: round1(float64(memPercent)),
		})
	}

	return processes, nil
}

// TopProcesses returns the n processes using the most CPU.
// Pipeline: Sort → Limit. Ties keep enumeration order.
func TopProcesses(processes []models.Process, n int) []models.Process {
	sorted := sortByCPU(processes)
	return limitTo(sorted, n)
}

// SORT: By CPU descending, stable
func sortByCPU(processes []models.Process) []models.Process {
	sorted := make([]models.Process, len(processes))
	copy(sorted, processes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CPUPercent > sorted[j].CPUPercent
	})
	return sorted
}

// LIMIT: Keep only top N
func limitTo(processes []models.Process, limit int) []models.Process {
	if limit < 0 {
		limit = 0
	}
	if len(processes) > limit {
		return processes[:limit]
	}
	return processes
}
