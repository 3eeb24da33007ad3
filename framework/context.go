package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context represents a test or subtest. It implements the TestingT interfaces of the assert and
// require packages, so it can be passed to those as if it were a *testing.T.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run creates a root context and runs the action in it. The returned Results contain every
// subtest started by the action.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.recovered(r)
		}
		c.finish()
	}()

	action(c)
}

func (c *Context) recovered(r interface{}) {
	if c.skipped {
		return
	}
	c.failed = true
	var addError error
	if _, ok := r.(*Context); ok {
		if len(c.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	}
	if addError != nil {
		c.errors = append(c.errors, addError)
		c.env.testLogger.TestError(c.id, addError)
	}
}

func (c *Context) finish() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.runCleanup(c.cleanups[i])
	}
	c.cleanups = nil

	if len(c.id.Path) == 0 && !c.failed {
		return // the root context only shows up in results if something outside a subtest failed
	}
	result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
	c.env.results.Tests = append(c.env.results.Tests, result)
	if c.failed {
		c.env.results.Failures = append(c.env.results.Failures, result)
	}
}

func (c *Context) runCleanup(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.failed = true
			err := fmt.Errorf("unexpected panic in deferred function: %+v", r)
			c.errors = append(c.errors, err)
			c.env.testLogger.TestError(c.id, err)
		}
	}()
	fn()
}

func (c *Context) report() {
	if c.skipped {
		c.env.testLogger.TestSkipped(c.id, c.skipReason)
	} else {
		c.env.testLogger.TestFinished(c.id, c.failed, c.debugLogger.Output())
	}
}

// ID returns the full identifier of this test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. The subtest ends when the action returns or when FailNow or Skip is called.
func (c *Context) Run(name string, action func(*Context)) {
	c.RunWithCategories(name, nil, action)
}

// RunWithCategories is like Run, but labels the subtest with categories that a CategoryFilter can
// select.
func (c *Context) RunWithCategories(name string, categories []string, action func(*Context)) {
	c1 := c.Begin(name, categories...)
	if c1 == nil {
		return
	}
	c1.run(action)
	c1.report()
}

// Selects returns true if a subtest with this name and these categories would pass the filter.
// Unlike Begin, it has no side effects.
func (c *Context) Selects(name string, categories ...string) bool {
	return c.env.filter == nil || c.env.filter(c.id.Plus(name, categories...))
}

// Begin starts a subtest whose body is not a function we can call, such as a scenario that is
// executed by an external runner. It returns nil if the test is excluded by the filter. Every
// non-nil result must be finished with End.
//
// Code running inside such a subtest must not call FailNow or Skip, since there is nothing to
// recover the panic; use Errorf instead.
func (c *Context) Begin(name string, categories ...string) *Context {
	id := c.id.Plus(name, categories...)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		reason := "excluded by filter parameters"
		c.env.results.Tests = append(c.env.results.Tests, TestResult{TestID: id, Skipped: true})
		c.env.testLogger.TestSkipped(id, reason)
		return nil
	}
	return &Context{
		id:  id,
		env: c.env,
	}
}

// End finishes a subtest that was started with Begin, running its deferred functions and
// recording its result.
func (c *Context) End() {
	c.finish()
	c.report()
}

// Errorf records a test failure. It does not stop the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// Failed returns true if the test has recorded any failure so far.
func (c *Context) Failed() bool {
	return c.failed
}

// FailNow marks the test as failed and exits it immediately.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer registers a function to be called when the test ends, whether it passed, failed, or
// exited early. Deferred functions run in reverse order of registration.
func (c *Context) Defer(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

// Debug adds a message to the test's debug output.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
