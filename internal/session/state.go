package session

import "github.com/VictorTPhan/ella-app/internal/content"

// State is everything a round has produced so far.
type State struct {
	// Stage is the current stage.
	Stage Stage

	// TopicInfo is set once per round at StageTopic. Nil until then.
	TopicInfo *content.TopicInfo

	// Memo holds the generated content of each entered quiz stage. A stage
	// is present only after its provider succeeded.
	Memo map[Stage]*content.StageData
}

func newState() State {
	return State{Stage: StageTopic, Memo: make(map[Stage]*content.StageData)}
}

// clone returns a copy that shares no mutable parts with s.
func (s State) clone() State {
	out := State{Stage: s.Stage, Memo: make(map[Stage]*content.StageData, len(s.Memo))}
	if s.TopicInfo != nil {
		t := *s.TopicInfo
		out.TopicInfo = &t
	}
	for k, v := range s.Memo {
		d := *v
		out.Memo[k] = &d
	}
	return out
}
