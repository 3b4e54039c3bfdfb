package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Choices renders a numbered multiple-choice question. Options are
// answered by number, starting at 1.
type Choices struct {
	Header   string
	Question string
	Options  []string
	Answer   int // index of the correct option
	Chosen   int // -1 until answered
}

// NewChoices creates an unanswered choice list.
func NewChoices(header, question string, options []string, answer int) Choices {
	return Choices{
		Header:   header,
		Question: question,
		Options:  options,
		Answer:   answer,
		Chosen:   -1,
	}
}

// Answered reports whether a choice has been recorded.
func (c Choices) Answered() bool {
	return c.Chosen >= 0
}

// View renders the question. After an answer the correct option is shown
// in green and a wrong pick in red.
func (c Choices) View() string {
	var b strings.Builder
	if c.Header != "" {
		b.WriteString(theme.Subtitle.Render(c.Header) + "\n")
	}
	b.WriteString(theme.Title.Render(c.Question) + "\n\n")

	for i, opt := range c.Options {
		line := fmt.Sprintf("  %d) %s", i+1, opt)
		switch {
		case !c.Answered():
			b.WriteString(theme.Body.Render(line))
		case i == c.Answer:
			b.WriteString(theme.Correct.Render(line))
		case i == c.Chosen:
			b.WriteString(theme.Incorrect.Render(line))
		default:
			b.WriteString(theme.Hint.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect returns true if the chosen option is the correct one.
func (c Choices) IsCorrect() bool {
	return c.Answered() && c.Chosen == c.Answer
}
