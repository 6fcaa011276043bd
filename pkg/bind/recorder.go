package bind

// Recorder receives instrumentation callouts from a root. The live
// bridge provides a Prometheus-backed implementation; the default
// recorder drops everything.
type Recorder interface {
	// ChangeObserved is called once per elementary mutation.
	ChangeObserved(changeType string)

	// DerivedForwarded is called when an invalidated derivation's
	// changed value is forwarded to the scheduler.
	DerivedForwarded(name string)

	// FlushDelivered is called once per delivered flush with the
	// number of changed properties.
	FlushDelivered(size int)
}

type nopRecorder struct{}

func (nopRecorder) ChangeObserved(string)   {}
func (nopRecorder) DerivedForwarded(string) {}
func (nopRecorder) FlushDelivered(int)      {}
