package driver

// Stage is the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota + 1
	StageParse
	StageSummarize
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "loading"
	case StageParse:
		return "parsing"
	case StageSummarize:
		return "summarizing"
	}
	return ""
}

// Status is the state of a file within its stage.
type Status uint8

const (
	StatusQueued Status = iota + 1
	StatusWorking
	StatusDone
	StatusCached
	StatusError // finished with error diagnostics
)

// Event is one progress report. File is empty for run-level events.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Errors int
}

func (o Options) emit(ev Event) {
	if o.Events != nil {
		o.Events <- ev
	}
}
