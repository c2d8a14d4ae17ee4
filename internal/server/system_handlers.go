package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vtbalaji/tradeidea-go/internal/database"
)

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	universeDB  *database.DB
	portfolioDB *database.DB
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, universeDB, portfolioDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		startupTime: time.Now(),
		universeDB:  universeDB,
		portfolioDB: portfolioDB,
	}
}

// HandleHealth reports process and database health. Degraded databases flip
// the overall status but the endpoint itself still answers 200 so monitors
// can read the detail.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	databases := map[string]string{}

	for name, db := range map[string]*database.DB{
		"universe":  h.universeDB,
		"portfolio": h.portfolioDB,
	} {
		if db == nil {
			continue
		}
		if err := db.Conn().Ping(); err != nil {
			h.log.Warn().Err(err).Str("database", name).Msg("Database ping failed")
			databases[name] = "unreachable"
			status = "degraded"
		} else {
			databases[name] = "ok"
		}
	}

	cpuPercent, ramPercent := h.systemStats()

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"status":       status,
			"uptime_hours": time.Since(h.startupTime).Hours(),
			"cpu_percent":  cpuPercent,
			"ram_percent":  ramPercent,
			"databases":    databases,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode health response")
	}
}

// systemStats samples CPU and RAM usage. The CPU sample uses a short 100ms
// interval so the health endpoint stays fast for pollers.
func (h *SystemHandlers) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}
