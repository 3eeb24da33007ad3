package apitests

import (
	"github.com/webqa/google-e2e/framework"
	"github.com/webqa/google-e2e/target"
)

// GroupName is the first element of the ID of every test in this group.
const GroupName = "api"

func RunTestSuite(
	site target.Site,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		c.Run(GroupName, func(c *framework.Context) {
			t := newTestScope(c, site)

			t.Run("homepage", DoHomepageTests)
			t.Run("endpoints", DoEndpointTests)
		})
	})
}
