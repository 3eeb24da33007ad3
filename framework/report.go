package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
)

// PrintResults writes a summary of the test run. If there were failures, it also writes a
// command line that would run only the failed tests, built from the program name and any
// arguments that should be repeated.
func PrintResults(out io.Writer, results Results, rerunArgs ...string) {
	passed, failed, skipped := results.Counts()
	if results.OK() {
		color.New(color.FgGreen).Fprintf(out, "All tests passed (%d passed, %d skipped)\n", passed, skipped)
		return
	}
	failedColor.Fprintf(out, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	fmt.Fprintln(out, "Failed tests:")
	for _, f := range results.Failures {
		if len(f.Errors) == 0 {
			fmt.Fprintf(out, "  %s\n", f.TestID)
			continue
		}
		for _, err := range f.Errors {
			line := strings.SplitN(reformatError(err).Error(), "\n", 2)[0]
			fmt.Fprintf(out, "  %s\n", TestFailure{ID: f.TestID, Err: fmt.Errorf("%s", line)})
		}
	}
	if len(rerunArgs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To run only the failed tests:")
		fmt.Fprintf(out, "  %s\n", RerunCommand(results, rerunArgs...))
	}
}

// RerunCommand returns a shell-quoted command line that selects only the tests that failed. Groups
// that failed only because one of their subtests failed are left out, since the subtest pattern
// already selects them.
func RerunCommand(results Results, args ...string) string {
	var b commandBuilder
	b.add(args...)
	for _, f := range leafFailures(results.Failures) {
		b.add("-run", exactPathPattern(f.TestID))
	}
	return b.String()
}

func leafFailures(failures []TestResult) []TestResult {
	var ret []TestResult
	for _, f := range failures {
		prefix := f.TestID.String() + "/"
		isParent := false
		for _, other := range failures {
			if strings.HasPrefix(other.TestID.String(), prefix) {
				isParent = true
				break
			}
		}
		if !isParent {
			ret = append(ret, f)
		}
	}
	return ret
}

func exactPathPattern(id TestID) string {
	parts := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		// "/" is the path separator in patterns, so it can't appear inside an element
		quoted := regexp.QuoteMeta(name)
		quoted = strings.ReplaceAll(quoted, "/", ".")
		parts = append(parts, "^"+quoted+"$")
	}
	return strings.Join(parts, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
