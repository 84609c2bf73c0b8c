// Package system probes the machine the pipeline runs on: which ffmpeg
// encoder is available, how many render workers to spawn, and how many
// frames can sit in flight without starving memory.
package system

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// BestEncoder asks ffmpeg which hardware H.264 encoder is available,
// preferring VideoToolbox (macOS) then NVENC, falling back to libx264.
func BestEncoder() string {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// WorkerCount picks the render worker count: the requested value when
// positive, otherwise the machine's logical CPU count.
func WorkerCount(requested int) int {
	if requested > 0 {
		return requested
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// FrameBudget returns how many frames of the given byte size may be held
// in memory at once, capped so rendering never claims more than a quarter
// of available memory. The floor keeps the pipeline moving on small
// machines.
func FrameBudget(frameBytes int) int {
	const floor, ceiling = 8, 256
	vm, err := mem.VirtualMemory()
	if err != nil || frameBytes <= 0 {
		return floor
	}
	budget := int(vm.Available / 4 / uint64(frameBytes))
	if budget < floor {
		return floor
	}
	if budget > ceiling {
		return ceiling
	}
	return budget
}
