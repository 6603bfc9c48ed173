package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/VictorTPhan/ella-app/internal/content"
	"github.com/VictorTPhan/ella-app/internal/session"
	"github.com/VictorTPhan/ella-app/internal/ui/components"
	"github.com/VictorTPhan/ella-app/internal/ui/theme"
)

var stageTitles = map[session.Stage]string{
	session.StageTopic:     "Step 1: Generate a Random Topic",
	session.StageHangul:    "Step 2: Pronunciation from Hangul",
	session.StageEnglish:   "Step 3: Pronunciation from English",
	session.StageFillBlank: "Step 4: Fill in the Blank",
	session.StageContinue:  "Step 5: Continue or End?",
}

var nextLabels = map[session.Stage]string{
	session.StageTopic:     "Next: Pronunciation from Hangul",
	session.StageHangul:    "Next: Pronunciation from English",
	session.StageEnglish:   "Next: Fill-in-the-Blank",
	session.StageFillBlank: "Next: Continue or End",
}

func questionText(k content.Kind) string {
	switch k {
	case content.KindHangul:
		return "What is the pronunciation of the following Korean text?"
	case content.KindEnglish:
		return "What is the Korean pronunciation of this English word or phrase?"
	case content.KindFillBlank:
		return "Fill in the blank in this Korean sentence:"
	}
	return ""
}

func choiceLabel(k content.Kind) string {
	if k == content.KindFillBlank {
		return "Which subject completes the sentence?"
	}
	return "Choose the correct answer:"
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.phase {
	case phaseLoading:
		return components.Center(s.spinner.View(), width, height)
	case phaseError:
		body = s.renderError(cw)
	default:
		body = s.renderStage(cw)
	}

	progress := components.StepBar{Current: int(s.sess.Stage()) + 1, Total: len(stageTitles)}.View()
	return components.Center(progress+"\n\n"+body, width, height)
}

func (s *QuizScreen) renderError(cw int) string {
	msg := theme.Incorrect.Render("Could not generate this step.") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-4).Render(s.errMsg) + "\n\n" +
		theme.Hint.Render("Press R to try again.")
	return components.Card(msg, cw)
}

func (s *QuizScreen) renderStage(cw int) string {
	stage := s.sess.Stage()
	switch {
	case stage == session.StageTopic:
		return s.renderTopic(cw)
	case stage.IsQuiz():
		return s.renderQuestion(stage, cw)
	default:
		return components.Card(s.buttons.View(), cw)
	}
}

func (s *QuizScreen) renderTopic(cw int) string {
	info, _ := s.sess.Topic()
	wrap := lipgloss.NewStyle().Width(cw - 4)

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Topic: "))
	b.WriteString(theme.Prompt.Render(info.Topic))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Render("Tutorial:"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(info.Tutorial))
	b.WriteString("\n\n")
	b.WriteString(theme.ButtonActive.Render("▸ " + nextLabels[session.StageTopic]))
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) renderQuestion(stage session.Stage, cw int) string {
	data, _ := s.sess.StageData(stage)
	wrap := lipgloss.NewStyle().Width(cw - 4)

	var b strings.Builder
	b.WriteString(theme.Body.Render(questionText(data.Kind)))
	b.WriteString("\n\n")
	b.WriteString(theme.Prompt.Render(data.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choices.View())

	if s.phase == phaseFeedback {
		b.WriteString("\n")
		if s.verdict.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Wrong!"))
			b.WriteString("\n\n")
			b.WriteString(theme.Body.Bold(true).Render("Correct Answer: "))
			b.WriteString(s.verdict.CorrectAnswer)
			if s.verdict.Explanation != "" {
				b.WriteString("\n")
				b.WriteString(wrap.Render(fmt.Sprintf("Explanation: %s", s.verdict.Explanation)))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(theme.ButtonActive.Render("▸ " + nextLabels[stage]))
	}
	return components.Card(b.String(), cw)
}
