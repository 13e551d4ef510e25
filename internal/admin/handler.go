// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

// StatusCounter reports how many documents of a resource sit in each
// status.
type StatusCounter interface {
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

type Handler struct {
	counters   map[string]StatusCounter
	dbPing     func(ctx context.Context) error
	dbStats    func(ctx context.Context) (map[string]any, error)
	redisPing  func(ctx context.Context) error
	redisStats func() *redis.PoolStats
	startedAt  time.Time
}

type HandlerConfig struct {
	Counters   map[string]StatusCounter
	DBPing     func(ctx context.Context) error
	DBStats    func(ctx context.Context) (map[string]any, error)
	RedisPing  func(ctx context.Context) error
	RedisStats func() *redis.PoolStats
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		counters:   cfg.Counters,
		dbPing:     cfg.DBPing,
		dbStats:    cfg.DBStats,
		redisPing:  cfg.RedisPing,
		redisStats: cfg.RedisStats,
		startedAt:  time.Now(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin/stats", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.GetDashboardStats)
		r.Get("/system", h.GetSystemStats)
	})
}

// GetDashboardStats counts every resource by status. Counters run
// concurrently; one failing counter fails the request.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names := make([]string, 0, len(h.counters))
	for name := range h.counters {
		names = append(names, name)
	}
	sort.Strings(names)

	type result struct {
		name   string
		counts map[string]int64
		err    error
	}

	results := make([]result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			counts, err := h.counters[name].StatusCounts(ctx)
			results[i] = result{name: name, counts: counts, err: err}
		}(i, name)
	}
	wg.Wait()

	resp := DashboardStatsResponse{Resources: make(map[string]ResourceStats, len(names))}
	for _, res := range results {
		if res.err != nil {
			core.InternalServerError(w, res.err)
			return
		}
		stats := ResourceStats{ByStatus: res.counts}
		for _, n := range res.counts {
			stats.Total += n
		}
		resp.Resources[res.name] = stats
	}

	core.OK(w, resp)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	db := DatabaseStatus{Healthy: true}
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			db.Healthy = false
		}
	}
	if db.Healthy && h.dbStats != nil {
		if stats, err := h.dbStats(ctx); err == nil {
			db.Stats = stats
		}
	}

	rs := RedisStatus{Enabled: h.redisStats != nil && h.redisStats() != nil}
	if rs.Enabled {
		rs.Healthy = true
		if h.redisPing != nil {
			if err := h.redisPing(ctx); err != nil {
				rs.Healthy = false
			}
		}
		stats := h.redisStats()
		rs.Stats = &RedisPoolStats{
			Hits:       stats.Hits,
			Misses:     stats.Misses,
			Timeouts:   stats.Timeouts,
			TotalConns: stats.TotalConns,
			IdleConns:  stats.IdleConns,
			StaleConns: stats.StaleConns,
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	core.OK(w, SystemStatsResponse{
		Database: db,
		Redis:    rs,
		Runtime: RuntimeStats{
			GoVersion:     runtime.Version(),
			NumGoroutine:  runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
			MemAlloc:      memStats.Alloc,
			MemSys:        memStats.Sys,
			NumGC:         memStats.NumGC,
			UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		},
	})
}

type ResourceStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type DashboardStatsResponse struct {
	Resources map[string]ResourceStats `json:"resources"`
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool           `json:"healthy"`
	Stats   map[string]any `json:"stats,omitempty"`
}

type RedisStatus struct {
	Enabled bool            `json:"enabled"`
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"totalConns"`
	IdleConns  uint32 `json:"idleConns"`
	StaleConns uint32 `json:"staleConns"`
}

type RuntimeStats struct {
	GoVersion     string `json:"goVersion"`
	NumGoroutine  int    `json:"numGoroutine"`
	NumCPU        int    `json:"numCpu"`
	MemAlloc      uint64 `json:"memAllocBytes"`
	MemSys        uint64 `json:"memSysBytes"`
	NumGC         uint32 `json:"numGc"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}
