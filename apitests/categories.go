package apitests

// Categories of the tests in this group, for the -category option. Every test is in CategoryAPI
// and in one other category.
const (
	CategoryAPI         = "api"
	CategorySmoke       = "smoke"
	CategoryRegression  = "regression"
	CategoryPerformance = "performance"
	CategorySecurity    = "security"
)

func categories(cs ...string) []string {
	return append([]string{CategoryAPI}, cs...)
}
