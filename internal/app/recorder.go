package app

// Recorder observes game events, typically to export metrics.
type Recorder interface {
	SessionProvisioned()
	SessionReleased()
	GameStarted()
	RoundStarted()
	AnswerSubmitted(correct bool)
	GameFinished(reason string)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) SessionProvisioned()  {}
func (NopRecorder) SessionReleased()     {}
func (NopRecorder) GameStarted()         {}
func (NopRecorder) RoundStarted()        {}
func (NopRecorder) AnswerSubmitted(bool) {}
func (NopRecorder) GameFinished(string)  {}
