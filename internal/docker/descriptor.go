// descriptor.go reads the compose descriptor just far enough to
// enumerate the declared service names. The controller never inspects
// service definitions (units stay opaque) but knowing the declared
// set lets status report "stopped" for units that have no container at
// all yet.
package docker

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// descriptor mirrors only the top-level services mapping of a compose
// file. Service bodies are intentionally not modeled.
type descriptor struct {
	Services map[string]serviceSpec `yaml:"services"`
}

// serviceSpec is deliberately empty: the controller addresses services
// by name only and never reads their attributes.
type serviceSpec struct{}

// ComposeServices returns the sorted service names declared in the
// compose descriptor at path.
func ComposeServices(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose descriptor: %w", err)
	}

	var d descriptor
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse compose descriptor %q: %w", path, err)
	}
	if len(d.Services) == 0 {
		return nil, fmt.Errorf("compose descriptor %q declares no services", path)
	}

	names := make([]string, 0, len(d.Services))
	for name := range d.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
