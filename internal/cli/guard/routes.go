package guard

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var routesYAML []byte

// Table holds the route descriptors, longest path first so that Resolve can
// pick the most specific match. Immutable after load.
type Table struct {
	routes []Route
}

type routesFile struct {
	Routes []Route `yaml:"routes"`
}

// NewTable parses the embedded route table.
func NewTable() (*Table, error) {
	var file routesFile
	if err := yaml.Unmarshal(routesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}

	routes := file.Routes
	sort.SliceStable(routes, func(i, j int) bool {
		return len(routes[i].Path) > len(routes[j].Path)
	})
	return &Table{routes: routes}, nil
}

// Resolve finds the descriptor governing a destination path. Nested
// destinations inherit the closest enclosing descriptor, the way child
// routes inherit their parent's access metadata.
func (t *Table) Resolve(path string) (Route, bool) {
	for _, route := range t.routes {
		if path == route.Path || strings.HasPrefix(path, route.Path+"/") {
			// Keep the requested path so a login redirect can return here
			resolved := route
			resolved.Path = path
			return resolved, true
		}
	}
	return Route{}, false
}
