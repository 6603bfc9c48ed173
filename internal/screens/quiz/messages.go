package quiz

// stageReadyMsg is sent when EnterStage returns.
type stageReadyMsg struct {
	Err error
}
