// Package uitests contains the UI test group: Gherkin scenarios in features/ that drive a real
// Chromium browser through Playwright.
//
// Each scenario gets its own browsing context, with video recording, and a full-page screenshot
// is saved if it fails. Scenarios are reported to the test harness as subtests named
// "ui/<feature file>/<scenario>".
package uitests
