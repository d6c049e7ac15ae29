package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLConfig is a kong configuration loader for flat YAML files keyed by
// flag name:
//
//	max-height: 8000
//	wait: 5s
//	stealth: true
//
// Keys may use dashes or underscores. Flags given on the command line take
// precedence over file values.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid YAML config: %w", err)
	}

	normalized := make(map[string]any, len(values))
	for k, v := range values {
		normalized[strings.ReplaceAll(strings.ToLower(k), "_", "-")] = v
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := normalized[flag.Name]
		if !ok || v == nil {
			return nil, nil
		}
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("config key %q must be a scalar", flag.Name)
		}
		return fmt.Sprint(v), nil
	}
	return f, nil
}
