package benchmark

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// MemoryUsage is one memory footprint snapshot, in megabytes. Shared is only
// populated on platforms that report it; Private is kept for schema
// compatibility and is always zero.
type MemoryUsage struct {
	RSSMB     float64 `json:"rss_mb"`
	VMSMB     float64 `json:"vms_mb"`
	SharedMB  float64 `json:"shared_mb"`
	PrivateMB float64 `json:"private_mb"`
}

// MemorySampler measures the process memory footprint around a benchmark run.
type MemorySampler interface {
	// Warmup stabilizes the runtime before the first measurement
	Warmup()

	// Stable returns the memory usage averaged over several samples
	Stable() (MemoryUsage, error)
}

// ProcessSampler samples the current process via the OS process table.
// Averaging several spaced samples smooths out allocator noise between the
// initial and final measurements.
type ProcessSampler struct {
	samples  int
	interval time.Duration

	// test seams
	sleep     func(time.Duration)
	readUsage func() (MemoryUsage, error)
}

// NewProcessSampler returns a sampler that averages 5 samples taken 500ms apart.
func NewProcessSampler() *ProcessSampler {
	return &ProcessSampler{
		samples:   5,
		interval:  500 * time.Millisecond,
		sleep:     time.Sleep,
		readUsage: readProcessMemory,
	}
}

// Warmup forces a collection and touches the vector allocation path so that
// lazily-initialized runtime structures are counted in the initial sample
// rather than attributed to the benchmark.
func (s *ProcessSampler) Warmup() {
	runtime.GC()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	warmup := make([][]float32, 10)
	for i := range warmup {
		warmup[i] = RandomVector(rng, DefaultDimensions)
	}
	_ = warmup

	s.sleep(time.Second)
}

// Stable averages s.samples snapshots, sleeping s.interval after each one.
func (s *ProcessSampler) Stable() (MemoryUsage, error) {
	var sum MemoryUsage
	for i := 0; i < s.samples; i++ {
		usage, err := s.readUsage()
		if err != nil {
			return MemoryUsage{}, fmt.Errorf("failed to sample process memory: %w", err)
		}
		sum.RSSMB += usage.RSSMB
		sum.VMSMB += usage.VMSMB
		sum.SharedMB += usage.SharedMB
		sum.PrivateMB += usage.PrivateMB
		s.sleep(s.interval)
	}

	n := float64(s.samples)
	return MemoryUsage{
		RSSMB:     sum.RSSMB / n,
		VMSMB:     sum.VMSMB / n,
		SharedMB:  sum.SharedMB / n,
		PrivateMB: sum.PrivateMB / n,
	}, nil
}

func readProcessMemory() (MemoryUsage, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return MemoryUsage{}, err
	}

	info, err := proc.MemoryInfo()
	if err != nil {
		return MemoryUsage{}, err
	}

	usage := MemoryUsage{
		RSSMB: toMB(info.RSS),
		VMSMB: toMB(info.VMS),
	}

	// MemoryInfoEx is Linux-only; elsewhere shared stays zero
	if ex, err := proc.MemoryInfoEx(); err == nil {
		usage.SharedMB = toMB(ex.Shared)
	}

	return usage, nil
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
