package model

// StageStatus is the final state of a stage inside a run.
type StageStatus string

const (
	StatusDone    StageStatus = "done"
	StatusSkipped StageStatus = "skipped"
	StatusFailed  StageStatus = "failed"
	StatusNotRun  StageStatus = "not run"
)

// StageInfo describes a fully rendered stage: the command line it runs and
// the artifact paths it consumes and produces. All templating has already
// been resolved, so the same StageInfo always launches the same process.
type StageInfo struct {
	Name    string
	Tool    string
	Command string
	Inputs  []string
	Outputs []string
}

var (
	StartStage = &StageInfo{Name: "start"}
	EndStage   = &StageInfo{Name: "end"}
)
