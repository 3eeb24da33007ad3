package framework

import (
	"errors"
	"regexp"
	"strings"
)

var assertionLabelRegex = regexp.MustCompile(`^\s*([A-Z][A-Za-z ]*):\s`)

// reformatError drops the "Error Trace" section that testify puts in its failure messages, since
// the stack locations are inside this program rather than in anything under test, and removes
// the leading tabs so the message lines up in console output.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	out := make([]string, 0, len(lines))
	inTrace := false
	for _, line := range lines {
		if m := assertionLabelRegex.FindStringSubmatch(line); m != nil {
			inTrace = m[1] == "Error Trace"
		}
		if inTrace || strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(line))
	}
	if len(out) == 0 {
		return err
	}
	return errors.New(strings.Join(out, "\n"))
}
