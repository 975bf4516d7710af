// Package prompt implements line-oriented operator prompting.
//
// Prompts are plain questions answered by a single line of text on the
// input stream. There are no timeouts and no retry limits: an invalid
// answer re-asks, and the stream closing is the only other way out.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Interface is the prompting surface consumed by callers. Implementations
// block until a line of input arrives or the stream ends.
type Interface interface {
	// Line prints the question and returns the operator's answer with
	// surrounding whitespace stripped. Returns io.EOF (possibly
	// wrapped) when the input stream is exhausted.
	Line(question string) (string, error)
}

// IO prompts over an arbitrary reader/writer pair, usually the process
// stdin/stdout.
type IO struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter over the given streams.
func New(r io.Reader, w io.Writer) *IO {
	return &IO{
		in:  bufio.NewReader(r),
		out: w,
	}
}

// Line asks the question and reads one answer line.
func (p *IO) Line(question string) (string, error) {
	fmt.Fprintln(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// Choose asks the question until the answer matches one of the choices
// (case-insensitive) and returns the matched choice. Invalid answers
// re-ask with a hint; there is no retry limit.
func Choose(p Interface, question string, choices ...string) (string, error) {
	hint := fmt.Sprintf(
		"Invalid option. Type %s.", strings.Join(choices, " or "),
	)

	ask := question
	for {
		answer, err := p.Line(ask)
		if err != nil {
			return "", err
		}

		for _, choice := range choices {
			if strings.EqualFold(answer, choice) {
				return choice, nil
			}
		}

		ask = hint
	}
}

// Compile-time check that IO implements Interface.
var _ Interface = (*IO)(nil)
