// Package apitests contains the API test group: plain HTTP requests against the site under test,
// with assertions on status, body, latency, and headers.
//
// These run against the live site. Nothing is mocked, and a single network failure fails the test
// that made the request.
package apitests
