package rule

// yamlRule is the intermediate struct for parsing YAML rule metadata.
// Maps YAML fields to types.Rule structure.
type yamlRule struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Level            string   `yaml:"level"`
	Description      string   `yaml:"description,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
	References       []string `yaml:"references,omitempty"`
	Categories       []string `yaml:"categories,omitempty"`
}

// yamlRulesFile represents the top-level structure of a rules YAML file.
type yamlRulesFile struct {
	Rules []yamlRule `yaml:"rules"`
}

// yamlConfig is the on-disk form of Config.
type yamlConfig struct {
	Rules struct {
		Include []string          `yaml:"include,omitempty"`
		Exclude []string          `yaml:"exclude,omitempty"`
		Levels  map[string]string `yaml:"levels,omitempty"`
	} `yaml:"rules"`
	UnicodeLiterals bool `yaml:"unicode_literals,omitempty"`
	NarrowBuild     bool `yaml:"narrow_build,omitempty"`
}
