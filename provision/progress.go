package provision

// Progress is notified around long blocking waits. The CLI plugs a
// terminal spinner in here; tests and non-interactive callers leave it
// unset.
type Progress interface {
	Start(message string)
	Stop()
}

type nopProgress struct{}

func (nopProgress) Start(string) {}

func (nopProgress) Stop() {}
