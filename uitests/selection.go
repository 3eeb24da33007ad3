package uitests

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// CategoryUI is the category of every scenario. Scenario tags such as @smoke add more categories.
const CategoryUI = "ui"

const featureFileExt = ".feature"

type featureFile struct {
	uri       string
	scenarios []scenarioInfo
}

type scenarioInfo struct {
	name       string
	line       int64
	categories []string
}

// loadFeatures parses every feature file found under the given paths, in the order godog would
// run them.
func loadFeatures(fsys fs.FS, paths []string) ([]featureFile, error) {
	var uris []string
	for _, root := range paths {
		err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, featureFileExt) {
				uris = append(uris, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(uris)

	ids := &messages.Incrementing{}
	var ret []featureFile
	for _, uri := range uris {
		f, err := fsys.Open(uri)
		if err != nil {
			return nil, err
		}
		doc, err := gherkin.ParseGherkinDocument(f, ids.NewId)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", uri, err)
		}
		ret = append(ret, featureFile{uri: uri, scenarios: scenariosOf(doc)})
	}
	return ret, nil
}

func scenariosOf(doc *messages.GherkinDocument) []scenarioInfo {
	if doc.Feature == nil {
		return nil
	}
	var ret []scenarioInfo
	add := func(sc *messages.Scenario, inherited []*messages.Tag) {
		ret = append(ret, scenarioInfo{
			name:       sc.Name,
			line:       sc.Location.Line,
			categories: tagCategories(append(append([]*messages.Tag(nil), inherited...), sc.Tags...)),
		})
	}
	for _, child := range doc.Feature.Children {
		switch {
		case child.Scenario != nil:
			add(child.Scenario, doc.Feature.Tags)
		case child.Rule != nil:
			tags := append(append([]*messages.Tag(nil), doc.Feature.Tags...), child.Rule.Tags...)
			for _, rc := range child.Rule.Children {
				if rc.Scenario != nil {
					add(rc.Scenario, tags)
				}
			}
		}
	}
	return ret
}

func tagCategories(tags []*messages.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return scenarioCategories(names)
}

// scenarioCategories turns Gherkin tag names into categories: "@smoke" becomes "smoke".
func scenarioCategories(tagNames []string) []string {
	ret := []string{CategoryUI}
	seen := map[string]bool{CategoryUI: true}
	for _, name := range tagNames {
		c := strings.ToLower(strings.TrimPrefix(name, "@"))
		if c != "" && !seen[c] {
			seen[c] = true
			ret = append(ret, c)
		}
	}
	return ret
}

// godogRun is one invocation of godog. Several feature files can share a run, but godog applies
// at most one line selector per file, so each partly selected file needs a run per scenario.
type godogRun struct {
	paths []string
}

func planRuns(selected map[string][]int64, all []featureFile) []godogRun {
	var whole godogRun
	var partial []godogRun
	for _, f := range all {
		lines := selected[f.uri]
		switch {
		case len(lines) == 0:
		case len(lines) == len(f.scenarios):
			whole.paths = append(whole.paths, f.uri)
		default:
			for _, line := range lines {
				partial = append(partial, godogRun{paths: []string{fmt.Sprintf("%s:%d", f.uri, line)}})
			}
		}
	}
	if len(whole.paths) > 0 {
		return append([]godogRun{whole}, partial...)
	}
	return partial
}

func featureName(uri string) string {
	base := path.Base(uri)
	return strings.TrimSuffix(base, path.Ext(base))
}
