package sim

import (
	"reflect"
	"sync"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	FrameCount      int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes registered systems in order, one frame per event.
type Scheduler struct {
	systems []System
	sink    func(Notice)

	mu          sync.Mutex
	frames      int64
	systemStats []*systemStatsInternal
}

// NewScheduler creates a scheduler whose flushed notices go to sink. A nil sink
// discards them.
func NewScheduler(sink func(Notice)) *Scheduler {
	return &Scheduler{
		systems: make([]System, 0),
		sink:    sink,
	}
}

// Register appends a system to the pipeline.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.mu.Lock()
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
	s.mu.Unlock()
}

// Once runs every registered system against frame and then flushes its commands.
func (s *Scheduler) Once(frame *Frame) {
	durations := make([]time.Duration, len(s.systems))
	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		durations[i] = time.Since(start)
	}

	s.record(durations)
	frame.Commands.Flush(s.sink)
}

func (s *Scheduler) record(durations []time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	for i, duration := range durations {
		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Stats returns statistics about system execution. It is safe to call while
// another goroutine runs frames.
func (s *Scheduler) Stats() *SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &SchedulerStats{
		SystemCount: len(s.systemStats),
		FrameCount:  s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
