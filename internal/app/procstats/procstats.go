package procstats

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// Stats contains resource usage of the viewer process itself
type Stats struct {
	CPU float64
	MEM float64 // in MB
}

// Sampler reads resource usage of the running process for the status bar
type Sampler interface {
	Sample() (Stats, error)
}

type sampler struct {
	proc *process.Process
}

// NewSampler creates a sampler bound to the current process
func NewSampler() Sampler {
	proc, err := process.NewProcess(int32(os.Getpid())) // #nosec G115 -- own pid
	if err != nil {
		proc = nil
	}

	return &sampler{proc: proc}
}

func (s *sampler) Sample() (Stats, error) {
	if s.proc == nil {
		return Stats{}, nil
	}

	stats := Stats{}

	cpuPercent, err := s.proc.CPUPercent()
	if err == nil {
		stats.CPU = cpuPercent
	}

	memInfo, err := s.proc.MemoryInfo()
	if err == nil {
		stats.MEM = float64(memInfo.RSS) / 1024 / 1024
	}

	return stats, nil
}

// FormatMemory renders a MB value for the status bar
func FormatMemory(mb float64) string {
	if mb >= 1024 {
		return fmt.Sprintf("%.2f Gb", mb/1024)
	}

	return fmt.Sprintf("%.1f Mb", mb)
}
