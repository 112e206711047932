package stats

import (
	"runtime"

	"github.com/rs/zerolog/log"
)

// MemUsage A snapshot of the runtime memory statistics in MiB.
type MemUsage struct {
	AllocMiB      uint64
	HeapAllocMiB  uint64
	TotalAllocMiB uint64
	SysMiB        uint64
	NumGC         uint32
}

func ReadMemUsage() MemUsage {
	bToMB := func(b uint64) uint64 {
		return b / 1024 / 1024
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemUsage{
		AllocMiB:      bToMB(m.Alloc),
		HeapAllocMiB:  bToMB(m.HeapAlloc),
		TotalAllocMiB: bToMB(m.TotalAlloc),
		SysMiB:        bToMB(m.Sys),
		NumGC:         m.NumGC,
	}
}

// LogCatalogLoaded logs the size of the loaded catalog together with the memory held afterwards.
func LogCatalogLoaded(records int, names int) MemUsage {
	u := ReadMemUsage()
	log.Info().
		Int("records", records).
		Int("names", names).
		Uint64("alloc_mib", u.AllocMiB).
		Uint64("heap_alloc_mib", u.HeapAllocMiB).
		Uint64("total_alloc_mib", u.TotalAllocMiB).
		Uint64("sys_mib", u.SysMiB).
		Uint32("num_gc", u.NumGC).
		Msg("catalog loaded")

	return u
}
