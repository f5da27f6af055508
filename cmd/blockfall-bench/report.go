package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/sim"
)

type Report struct {
	// Configuration
	Games     int
	MaxTicks  int
	Seed      uint64
	InputRate int
	Workers   int
	Board     string
	Catalog   int

	// Results
	TotalTime      time.Duration
	TotalTicks     int64
	TotalActions   int64
	TotalPieces    int64
	TotalLines     int64
	Ended          int
	Score          Stats[int]
	Clears         []ClearRow
	UpdateTime     Stats[time.Duration]
	Systems        []sim.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type ClearRow struct {
	Lines int
	Count int64
}

type Stats[T int | time.Duration] struct {
	Min     T
	Max     T
	Avg     T
	Samples []T
}

func (s *Stats[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / T(len(s.Samples))
}

// Add folds one game into the report.
func (r *Report) Add(g GameResult) {
	r.TotalTicks += int64(g.Ticks)
	r.TotalActions += int64(g.Actions)
	r.TotalPieces += int64(g.Pieces)
	r.TotalLines += int64(g.Lines)
	if g.Ended {
		r.Ended++
	}
	r.Score.Samples = append(r.Score.Samples, g.Score)
	r.UpdateTime.Samples = append(r.UpdateTime.Samples, g.UpdateTimes...)

	for lines, n := range g.Clears {
		i := slices.IndexFunc(r.Clears, func(c ClearRow) bool { return c.Lines == lines })
		if i < 0 {
			r.Clears = append(r.Clears, ClearRow{Lines: lines})
			i = len(r.Clears) - 1
		}
		r.Clears[i].Count += n
	}

	r.Systems = mergeSystemStats(r.Systems, g.Systems)
}

// Finalize computes the summary statistics once every game was added.
func (r *Report) Finalize() {
	r.Score.Finalize()
	r.UpdateTime.Finalize()
	slices.SortFunc(r.Clears, func(a, b ClearRow) int { return a.Lines - b.Lines })
}

func mergeSystemStats(into, from []sim.SystemStats) []sim.SystemStats {
	if into == nil {
		return slices.Clone(from)
	}

	for i, s := range from {
		if i >= len(into) {
			into = append(into, s)
			continue
		}
		m := &into[i]
		if s.ExecutionCount == 0 {
			continue
		}
		if m.ExecutionCount == 0 || s.MinDuration < m.MinDuration {
			m.MinDuration = s.MinDuration
		}
		m.MaxDuration = max(m.MaxDuration, s.MaxDuration)
		m.ExecutionCount += s.ExecutionCount
		m.TotalDuration += s.TotalDuration
		m.AvgDuration = m.TotalDuration / time.Duration(m.ExecutionCount)
		m.LastDuration = s.LastDuration
	}
	return into
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Benchmark Report

## Configuration
- **Games:** {{.Games}}
- **Max Ticks Per Game:** {{.MaxTicks}}
- **Base Seed:** {{.Seed}}
- **Inputs Per Tick:** {{.InputRate}}
- **Workers:** {{.Workers}}
- **Board:** {{.Board}}
- **Catalog Pieces:** {{.Catalog}}

## Games
- **Total Time:** {{.TotalTime}}
- **Games Ended:** {{.Ended}} / {{.Games}}
- **Ticks:** {{.TotalTicks}} ({{perGame .TotalTicks .Games}} per game)
- **Player Actions:** {{.TotalActions}}
- **Pieces Locked:** {{.TotalPieces}}
- **Lines Cleared:** {{.TotalLines}}
- **Score:**
  - **Avg:** {{.Score.Avg}}
  - **Min:** {{.Score.Min}}
  - **Max:** {{.Score.Max}}
{{if .Clears}}
| Rows at once | Clears |
|---|---|
{{range .Clears}}| {{.Lines}} | {{.Count}} |
{{end}}{{end}}
## Performance Results
- **Dispatch Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| System | Runs | Avg | Min | Max | Total |
|---|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"perGame": func(total int64, games int) string {
			if games == 0 {
				return "0"
			}
			return fmt.Sprintf("%.1f", float64(total)/float64(games))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
