package apitests

import (
	"github.com/webqa/google-e2e/framework"
	"github.com/webqa/google-e2e/target"

	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the API test group.
//
// It implements the same basic functionality as Go's testing.T, on top of our framework package,
// so it can be passed to the assert and require packages. Every T has its own Client, which is
// closed when the test ends.
type T struct {
	context *framework.Context
	site    target.Site
	client  *Client
}

func newTestScope(context *framework.Context, site target.Site) *T {
	t := &T{
		context: context,
		site:    site,
		client:  NewClient(site, context.DebugLogger()),
	}
	context.Defer(t.client.Close)
	return t
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.site))
	})
}

// RunWithCategories runs a subtest that can be selected with -category.
func (t *T) RunWithCategories(name string, categories []string, action func(*T)) {
	t.context.RunWithCategories(name, categories, func(c *framework.Context) {
		action(newTestScope(c, t.site))
	})
}

// Debug adds a message to the test's debug output, which is shown if the test fails and debug
// output was requested.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Site returns the definition of the site under test.
func (t *T) Site() target.Site {
	return t.site
}

// RequireGet requests a path on the site. If the request can't be made at all, the test fails
// and exits immediately.
func (t *T) RequireGet(path string) *Response {
	resp, err := t.client.Get(path)
	require.NoError(t, err)
	return resp
}
