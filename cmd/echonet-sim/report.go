package main

import (
	"io"
	"text/template"

	"github.com/google/uuid"

	"github.com/plus3/echonet/ecs"
)

const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// LevelResult is the outcome of one level attempt.
type LevelResult struct {
	ID       int
	Name     string
	Outcome  string
	Frames   int
	TimeLeft float64
}

// Report accumulates the run's results and renders them as markdown.
type Report struct {
	RunID       string
	LevelCount  int
	Levels      []LevelResult
	TotalFrames int
	TimedOut    bool
	Done        bool

	SchedulerStats *ecs.SchedulerStats
}

func NewReport(levelCount int) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		LevelCount: levelCount,
	}
}

// Failed reports whether any level attempt ended in a failure.
func (r *Report) Failed() bool {
	for _, level := range r.Levels {
		if level.Outcome != OutcomeCompleted {
			return true
		}
	}
	return false
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# EchoNet Simulation Report

- **Run ID:** {{.RunID}}
- **Levels:** {{len .Levels}} / {{.LevelCount}} attempted
- **Total Frames:** {{.TotalFrames}}
{{- if .TimedOut}}
- **TIMED OUT before finishing**
{{- end}}

## Level Results
{{range .Levels -}}
- Level {{.ID}} ({{.Name}}): {{.Outcome}} in {{.Frames}} frames{{if gt .TimeLeft 0.0}}, {{printf "%.1f" .TimeLeft}}s left{{end}}
{{end}}
## System Timings
{{range .SchedulerStats.Systems -}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}`

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
