// Package config loads and validates the boardkeeper configuration document.
// The document is read once at startup into an immutable Config; there is no
// lazily-populated global state.
package config

import (
	"io/ioutil"
	"sort"
	"time"

	"boardkeeper/pkg/people"
	"boardkeeper/pkg/workflow"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ProjectConfig describes one tracked project board.
type ProjectConfig struct {
	Name string `yaml:"name"`
	// Members are canonical person names (resolved through the people
	// directory), not GitHub usernames.
	Members []string `yaml:"members"`
	// StateOwners maps a workflow state to the canonical name of the person
	// who shepherds issues in that state.
	StateOwners map[string]string `yaml:"stateOwners"`
	// OwnsFiles holds regex patterns matched against the files a pull
	// request touches.
	OwnsFiles []string `yaml:"ownsFiles"`
}

// Config is the full configuration document.
type Config struct {
	Org      string `yaml:"org"`
	Repo     string `yaml:"repo"`
	Timezone string `yaml:"timezone"`

	// Projects is keyed by project number, the stable handle GitHub shows in
	// board URLs.
	Projects map[int]ProjectConfig `yaml:"projects"`

	SkipColumns   []string                    `yaml:"skipColumns"`
	States        workflow.Mapping            `yaml:"states"`
	FallbackState string                      `yaml:"fallbackState"`
	People        map[string]people.Usernames `yaml:"people"`

	// CardColumn names the column new reconciliation cards land in. Empty
	// means the project's first column.
	CardColumn string `yaml:"cardColumn"`

	SlackWebhook      string `yaml:"slackWebhook"`
	TargetProcessHost string `yaml:"targetProcessHost"`

	// Location is derived from Timezone during Load.
	Location *time.Location `yaml:"-"`
}

// Load reads, parses, and validates the config document at path.
func Load(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %q", path)
	}

	config := new(Config)
	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, errors.Wrapf(err, "parse config file %q", path)
	}

	if err := config.init(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %q", path)
	}

	return config, nil
}

func (c *Config) init() error {
	if c.Org == "" || c.Repo == "" {
		return errors.New("org and repo must be set")
	}
	if len(c.Projects) == 0 {
		return errors.New("at least one project must be configured")
	}

	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return errors.Wrapf(err, "unknown timezone %q", c.Timezone)
	}
	c.Location = location

	return nil
}

// ProjectNumbers returns the tracked project numbers in ascending order.
func (c *Config) ProjectNumbers() []int {
	var numbers []int
	for number := range c.Projects {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	return numbers
}

// Directory builds the people directory from the config document.
func (c *Config) Directory() *people.Directory {
	return people.NewDirectory(c.People)
}
