package buildspace

// Stage identifies what is happening to one lint crate.
type Stage string

const (
	// StageFetch covers git clones and registry downloads.
	StageFetch Stage = "fetch"
	// StageBuild is the plugin compilation itself.
	StageBuild Stage = "build"
)

// Status is the lifecycle state of one lint crate build.
type Status string

const (
	// StatusQueued indicates the crate is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the crate's current stage is running.
	StatusWorking Status = "working"
	// StatusCached indicates the fingerprint matched and the build
	// was skipped.
	StatusCached Status = "cached"
	// StatusDone indicates the plugin is ready.
	StatusDone Status = "done"
	// StatusError indicates the crate failed.
	StatusError Status = "error"
)

// Event reports build progress for one lint crate. A zero Crate name
// never occurs: every event belongs to a crate.
type Event struct {
	Crate  string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes progress events. A nil sink is allowed and
// drops them.
type ProgressSink chan<- Event

func (s ProgressSink) send(ev Event) {
	if s != nil {
		s <- ev
	}
}
