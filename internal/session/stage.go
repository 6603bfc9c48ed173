package session

import "fmt"

// Stage is a step of a round. Stages only move forward until Reset.
type Stage int

const (
	StageTopic     Stage = iota // pick and show the round's topic
	StageHangul                 // pronounce the topic written in Hangul
	StageEnglish                // pronounce the English topic in Korean
	StageFillBlank              // pick the subject missing from a sentence
	StageContinue               // start a new topic or end
)

// QuizStages are the stages that carry an answer set, in order.
var QuizStages = []Stage{StageHangul, StageEnglish, StageFillBlank}

// IsQuiz reports whether s carries an answer set.
func (s Stage) IsQuiz() bool {
	return s >= StageHangul && s <= StageFillBlank
}

func (s Stage) String() string {
	switch s {
	case StageTopic:
		return "topic"
	case StageHangul:
		return "hangul"
	case StageEnglish:
		return "english"
	case StageFillBlank:
		return "fill-blank"
	case StageContinue:
		return "continue"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}
