// Package framework contains the test harness infrastructure shared by the API and UI test
// groups.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate success/failure
// results. It can be passed to the assert and require packages.
//
// 2. Tests are identified by a path of names, and can be selected or excluded with regular
// expressions on the command line.
//
// 3. Results are reported as the tests run through a TestLogger, and summarized at the end.
//
// The code that knows what is being tested (HTTP requests, browser scenarios) is in other
// packages, which provide a domain-specific test API on top of the test context.
package framework
