package framework

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by name.
//
// A MustMatch pattern is split on "/" like the -run flag of "go test": each element must match
// the name at the same depth of the test path. A test whose path is shorter than the pattern runs
// if the elements it does have match, so that the groups containing a selected test still run.
// A MustNotMatch pattern is matched against the whole test ID, which also excludes every subtest
// of a matching group. Categories, if any, further restrict the tests that have categories.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
	Categories   CategoryFilter
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatchPath(id.Path)) &&
		!r.MustNotMatch.AnyMatch(id.String()) &&
		r.Categories.Match(id)
}

// CategoryFilter selects tests that have at least one of the listed categories, ignoring case.
// Tests without categories, which are the groups, always pass.
type CategoryFilter []string

func (f CategoryFilter) String() string {
	return strings.Join(f, ", ")
}

// Set is called by the command line parser
func (f *CategoryFilter) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("category must not be empty")
	}
	*f = append(*f, value)
	return nil
}

func (f CategoryFilter) IsDefined() bool {
	return len(f) != 0
}

func (f CategoryFilter) Match(id TestID) bool {
	if !f.IsDefined() || len(id.Categories) == 0 {
		return true
	}
	for _, want := range f {
		for _, have := range id.Categories {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

type RegexList struct {
	patterns []*regexp.Regexp
	levels   [][]*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	var levels []*regexp.Regexp
	for _, part := range strings.Split(value, "/") {
		lrx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex %q in path element: %w", part, err)
		}
		levels = append(levels, lrx)
	}
	r.patterns = append(r.patterns, rx)
	r.levels = append(r.levels, levels)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyMatchPath returns true if any pattern matches the test path element by element.
func (r RegexList) AnyMatchPath(path []string) bool {
	for _, levels := range r.levels {
		if matchLevels(levels, path) {
			return true
		}
	}
	return false
}

func matchLevels(levels []*regexp.Regexp, path []string) bool {
	for i, name := range path {
		if i >= len(levels) {
			break
		}
		if !levels[i].MatchString(name) {
			return false
		}
	}
	return true
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() || filters.Categories.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		if filters.Categories.IsDefined() {
			fmt.Fprintf(out, "  skip any not in categories %s\n", filters.Categories)
		}
		fmt.Fprintln(out)
	}
}
