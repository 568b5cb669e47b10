// Package people maps canonical display names to GitHub and Slack usernames.
package people

import (
	"sort"
	"strings"
)

// Usernames holds the external identities for one person.
type Usernames struct {
	Github string `yaml:"github"`
	Slack  string `yaml:"slack"`
}

// Directory is a bidirectional, case-insensitive lookup between canonical
// names and GitHub/Slack usernames. All keys and values are lower-cased when
// the directory is built, so lookups are case-insensitive regardless of how
// the caller spells things.
type Directory struct {
	people map[string]Usernames
	names  []string
}

// NewDirectory builds a directory from the operator-supplied mapping of
// canonical name to usernames.
func NewDirectory(mapping map[string]Usernames) *Directory {
	d := &Directory{
		people: map[string]Usernames{},
	}

	for name, usernames := range mapping {
		key := strings.ToLower(name)
		d.people[key] = Usernames{
			Github: strings.ToLower(usernames.Github),
			Slack:  strings.ToLower(usernames.Slack),
		}
		d.names = append(d.names, key)
	}

	// Scans over the directory use a stable order so reverse lookups are
	// deterministic.
	sort.Strings(d.names)

	return d
}

// ToGithubUser resolves a canonical name to a GitHub username.
func (d *Directory) ToGithubUser(name string) (string, bool) {
	usernames, ok := d.people[strings.ToLower(name)]
	return usernames.Github, ok
}

// ToSlackUser resolves a canonical name to a Slack username.
func (d *Directory) ToSlackUser(name string) (string, bool) {
	usernames, ok := d.people[strings.ToLower(name)]
	return usernames.Slack, ok
}

// ToGithubUsers resolves a list of canonical names, dropping unknown names.
func (d *Directory) ToGithubUsers(names []string) []string {
	var out []string
	for _, name := range names {
		if github, ok := d.ToGithubUser(name); ok {
			out = append(out, github)
		}
	}
	return out
}

// FindSlackByGithub finds the Slack username for a GitHub username. The scan
// stops at the first match; behavior with duplicate usernames across
// different canonical names is unspecified.
func (d *Directory) FindSlackByGithub(github string) (string, bool) {
	github = strings.ToLower(github)
	for _, name := range d.names {
		if d.people[name].Github == github {
			return d.people[name].Slack, true
		}
	}
	return "", false
}

// FindGithubBySlack finds the GitHub username for a Slack username.
func (d *Directory) FindGithubBySlack(slack string) (string, bool) {
	slack = strings.ToLower(slack)
	for _, name := range d.names {
		if d.people[name].Slack == slack {
			return d.people[name].Github, true
		}
	}
	return "", false
}
