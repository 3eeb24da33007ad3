package uitests

import (
	"fmt"

	"github.com/stretchr/testify/assert"
)

// stepAsserter lets step definitions use testify assertions. godog expects a step to return its
// failure as an error, so the first failed assertion is kept and returned.
type stepAsserter struct {
	err error
}

func (a *stepAsserter) Errorf(format string, args ...interface{}) {
	if a.err == nil {
		a.err = fmt.Errorf(format, args...)
	}
}

func assertTrue(value bool, msgAndArgs ...interface{}) error {
	var a stepAsserter
	assert.True(&a, value, msgAndArgs...)
	return a.err
}

func assertContains(s, contains string, msgAndArgs ...interface{}) error {
	var a stepAsserter
	assert.Contains(&a, s, contains, msgAndArgs...)
	return a.err
}
