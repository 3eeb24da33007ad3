package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/webqa/google-e2e/apitests"
	"github.com/webqa/google-e2e/framework"
	"github.com/webqa/google-e2e/uitests"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args, os.LookupEnv, os.Stderr) {
		return 1
	}

	site, err := params.Site()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Site definition error: %s\n", err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	if err := framework.CheckTarget(site.URL(site.HomePath), params.preflightTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Site is not reachable: %s\n", err)
		return 1
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	var results framework.Results
	if !params.uiOnly {
		fmt.Printf("Running API tests against %s\n", site.BaseURL)
		results = results.Merge(apitests.RunTestSuite(site, params.filters.AsFilter, testLogger))
	}
	if !params.apiOnly {
		fmt.Printf("Running UI tests against %s (headless: %t)\n", site.BaseURL, params.Headless())
		artifactsDir := params.env.ArtifactsDir
		if artifactsDir == "" {
			artifactsDir = "."
		}
		results = results.Merge(uitests.RunTestSuite(uitests.Config{
			Site:         site,
			Launch:       uitests.LaunchOptions{Headless: params.Headless()},
			ArtifactsDir: filepath.Clean(artifactsDir),
			Format:       params.godogFormat,
			Output:       os.Stdout,
			Logger:       mainDebugLogger,
		}, params.filters.AsFilter, testLogger))
	}

	fmt.Println()
	framework.PrintResults(os.Stdout, results, params.RerunArgs(args[0])...)
	if !results.OK() {
		return 1
	}
	return 0
}
