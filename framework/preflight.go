package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const preflightRetryInterval = time.Millisecond * 500

// CheckTarget verifies that the site under test is reachable before any tests run, so that a
// network outage shows up as one startup error instead of a failure in every test. Any HTTP
// status counts as reachable; only transport errors cause another attempt. It gives up once the
// timeout has elapsed.
func CheckTarget(url string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to %s", url)

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	defer client.CloseIdleConnections()
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		req, err := http.NewRequest(http.MethodHead, url, nil)
		if err != nil {
			fmt.Fprintln(output)
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			fmt.Fprintln(output)
			fmt.Fprintf(output, "Target responded with status %d\n", resp.StatusCode)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(preflightRetryInterval)
	}
}
