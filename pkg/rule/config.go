package rule

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/regexlint/pkg/types"
)

// DefaultConfigName is the config file looked up in the working directory.
const DefaultConfigName = ".regexlint.yml"

// Config selects and tunes the checks an Engine runs.
type Config struct {
	FilterConfig
	Levels          map[string]types.Level // per-rule level overrides
	UnicodeLiterals bool
	NarrowBuild     bool
}

// ParseConfig reads a config document.
//
//	rules:
//	  include: ["regex\\..*"]
//	  exclude: ["regex\\.charclass\\.simplifiable"]
//	  levels:
//	    regex.escape.suspicious: error
//	unicode_literals: true
//	narrow_build: false
func ParseConfig(data []byte) (*Config, error) {
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	c := &Config{
		FilterConfig: FilterConfig{
			Include: yc.Rules.Include,
			Exclude: yc.Rules.Exclude,
		},
		UnicodeLiterals: yc.UnicodeLiterals,
		NarrowBuild:     yc.NarrowBuild,
	}
	if len(yc.Rules.Levels) > 0 {
		c.Levels = make(map[string]types.Level, len(yc.Rules.Levels))
		for id, l := range yc.Rules.Levels {
			level, err := types.ParseLevel(l)
			if err != nil {
				return nil, fmt.Errorf("level override for %s: %w", id, err)
			}
			c.Levels[id] = level
		}
	}
	return c, nil
}

// LoadConfig reads the config file at path. A missing file at the default
// name is not an error and yields an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultConfigName {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseConfig(data)
}
