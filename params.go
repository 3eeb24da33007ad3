package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/webqa/google-e2e/framework"
	"github.com/webqa/google-e2e/target"

	"github.com/mstoykov/envconfig"
)

const defaultPreflightTimeout = time.Second * 10

type commandParams struct {
	siteFile         string
	filters          framework.RegexFilters
	apiOnly          bool
	uiOnly           bool
	debug            bool
	debugAll         bool
	godogFormat      string
	preflightTimeout time.Duration
	env              environment
}

// environment holds the settings that come from environment variables rather than flags.
type environment struct {
	Headless     string `envconfig:"HEADLESS"`
	BaseURL      string `envconfig:"E2E_BASE_URL"`
	ArtifactsDir string `envconfig:"E2E_ARTIFACTS_DIR"`
}

// Read parses the command line and the environment. lookupEnv is os.LookupEnv except in tests.
func (c *commandParams) Read(args []string, lookupEnv func(string) (string, bool), errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.siteFile, "site", "", "YAML file describing the site under test (default: Google)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.filters.Categories, "category",
		"category of tests to run (repeatable): api, ui, smoke, regression, performance, security")
	fs.BoolVar(&c.apiOnly, "api-only", false, "run only the API tests")
	fs.BoolVar(&c.uiOnly, "ui-only", false, "run only the UI tests")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.godogFormat, "godog-format", "progress", "godog output format for the UI tests")
	fs.DurationVar(&c.preflightTimeout, "preflight-timeout", defaultPreflightTimeout,
		"how long to wait for the site to respond before running any tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	if c.apiOnly && c.uiOnly {
		fmt.Fprintln(errOut, "-api-only and -ui-only cannot be used together")
		fs.Usage()
		return false
	}
	if err := envconfig.Process("", &c.env, lookupEnv); err != nil {
		fmt.Fprintf(errOut, "invalid environment: %s\n", err)
		return false
	}
	return true
}

// Headless is true unless HEADLESS is exactly "false".
func (c *commandParams) Headless() bool {
	return c.env.Headless != "false"
}

// Site loads the site definition and applies E2E_BASE_URL.
func (c *commandParams) Site() (target.Site, error) {
	site := target.Default()
	if c.siteFile != "" {
		var err error
		if site, err = target.Load(c.siteFile); err != nil {
			return site, err
		}
	}
	if c.env.BaseURL != "" {
		site.BaseURL = strings.TrimSuffix(c.env.BaseURL, "/")
		if err := site.Validate(); err != nil {
			return site, fmt.Errorf("invalid E2E_BASE_URL: %w", err)
		}
	}
	return site, nil
}

// RerunArgs returns the arguments that should be repeated when rerunning failed tests, starting
// with the program name. Test filters are not included.
func (c *commandParams) RerunArgs(program string) []string {
	ret := []string{program}
	if c.siteFile != "" {
		ret = append(ret, "-site", c.siteFile)
	}
	if c.apiOnly {
		ret = append(ret, "-api-only")
	}
	if c.uiOnly {
		ret = append(ret, "-ui-only")
	}
	if c.godogFormat != "progress" {
		ret = append(ret, "-godog-format", c.godogFormat)
	}
	return ret
}
