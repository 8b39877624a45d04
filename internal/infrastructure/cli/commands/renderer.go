package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/doeshing/pingbot/internal/domain"
)

const answerSeparator = " | A: "

// renderAnswerLine prints an answers log record with the answer highlighted.
func renderAnswerLine(out io.Writer, line string) {
	head, answer, ok := splitAnswer(line)
	if !ok {
		fmt.Fprintln(out, line)
		return
	}

	dim := color.New(color.Faint)
	dim.Fprint(out, head)
	answerColor(answer).Fprintln(out, answer)
}

// splitAnswer splits at the first separator. Failure text after it may
// repeat the separator.
func splitAnswer(line string) (head, answer string, ok bool) {
	idx := strings.Index(line, answerSeparator)
	if idx < 0 {
		return line, "", false
	}
	cut := idx + len(answerSeparator)
	return line[:cut], line[cut:], true
}

func answerColor(answer string) *color.Color {
	switch {
	case answer == domain.AnswerTimeout, strings.HasPrefix(answer, domain.AnswerErrorPrefix):
		return color.New(color.FgRed, color.Bold)
	case strings.HasPrefix(answer, domain.AnswerFailPrefix):
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}
