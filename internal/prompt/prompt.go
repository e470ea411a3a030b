// Package prompt implements the interactive configure flow: a blocking
// question/answer loop on the terminal with per-field defaults.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jgivc/uploader/internal/common"
)

type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		r: bufio.NewReader(r),
		w: w,
	}
}

// Ask prints the query and blocks until the user answers. Empty input takes
// the default; with no default set the question is asked again. The answer
// is trimmed of surrounding whitespace.
func (p *Prompter) Ask(query, def string) (string, error) {
	for {
		fmt.Fprintln(p.w, query)
		if def != "" {
			fmt.Fprintf(p.w, "\tdefault: %s\n", def)
		}

		line, err := p.r.ReadString('\n')

		if answer := strings.TrimSpace(line); answer != "" {
			return answer, nil
		}

		if def != "" {
			return def, nil
		}

		if err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrEmptyInput, err)
		}
	}
}
