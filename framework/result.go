package framework

import (
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Merge returns the combined results of two test runs.
func (r Results) Merge(other Results) Results {
	return Results{
		Tests:    append(append([]TestResult(nil), r.Tests...), other.Tests...),
		Failures: append(append([]TestResult(nil), r.Failures...), other.Failures...),
	}
}

// Counts returns the number of tests that passed, failed, and were skipped.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Skipped:
			skipped++
		case len(t.Errors) > 0:
			failed++
		default:
			passed++
		}
	}
	return
}

type TestID struct {
	Path []string

	// Categories label this test alone, not the tests it contains, so that a group is never
	// excluded by a category filter meant for its subtests.
	Categories []string
}

// Plus returns the ID of a subtest of this test.
func (t TestID) Plus(name string, categories ...string) TestID {
	return TestID{
		Path:       append(append([]string(nil), t.Path...), name),
		Categories: categories,
	}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
