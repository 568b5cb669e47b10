// Package reconcile computes and applies the minimal set of project
// membership additions for open pull requests. Expected membership comes
// from per-project member lists in config; current membership is whatever the
// board (or the PR page) says right now. Nothing is persisted between runs.
package reconcile

import (
	"sort"
	"strings"

	"boardkeeper/pkg/boards"
	"boardkeeper/pkg/config"
	"boardkeeper/pkg/people"

	"github.com/sirupsen/logrus"
)

// Addition is one pending membership edge: this pull request should be on
// this project but is not.
type Addition struct {
	PullRequest boards.PullRequest
	Project     boards.Project
}

// CurrentMemberships maps project number to the set of issue/PR numbers that
// currently have a card on that project.
type CurrentMemberships map[int]map[int]bool

// Reconciler plans membership additions for tracked authors.
type Reconciler struct {
	projects  []boards.Project
	configs   map[int]config.ProjectConfig
	directory *people.Directory
	log       *logrus.Entry

	order     []int
	whitelist map[string]bool
	expected  map[string][]int
}

// New builds a reconciler over the id-filtered project set. The author
// whitelist and per-author expected project lists are derived once here.
func New(projects []boards.Project, configs map[int]config.ProjectConfig, directory *people.Directory, log *logrus.Entry) *Reconciler {
	r := &Reconciler{
		projects:  projects,
		configs:   configs,
		directory: directory,
		log:       log,
		whitelist: map[string]bool{},
		expected:  map[string][]int{},
	}

	for number := range configs {
		r.order = append(r.order, number)
	}
	sort.Ints(r.order)

	for _, number := range r.order {
		for _, member := range configs[number].Members {
			github, ok := directory.ToGithubUser(member)
			if !ok {
				log.Debugf("Member %q of project %d is not in the people directory", member, number)
				continue
			}
			r.whitelist[github] = true
			r.expected[github] = append(r.expected[github], number)
		}
	}

	return r
}

// TrackedAuthor reports whether the author appears in at least one project's
// member list.
func (r *Reconciler) TrackedAuthor(login string) bool {
	return r.whitelist[strings.ToLower(login)]
}

// ExpectedProjects returns the numbers of the projects an author should be
// tagged with, in ascending project number order.
func (r *Reconciler) ExpectedProjects(login string) []int {
	return r.expected[strings.ToLower(login)]
}

// Plan computes expected minus current for every pull request by a tracked
// author. Running Plan again after all additions were applied yields nothing.
func (r *Reconciler) Plan(pulls []boards.PullRequest, current CurrentMemberships) []Addition {
	byNumber := map[int]boards.Project{}
	for _, project := range r.projects {
		byNumber[project.Number] = project
	}

	var additions []Addition
	for _, pull := range pulls {
		author := strings.ToLower(pull.User.Login)
		if !r.whitelist[author] {
			r.log.Debugf("Ignoring PR #%d by untracked author %q", pull.Number, pull.User.Login)
			continue
		}

		r.log.Infof("Analyzing PR: #%d (%s)", pull.Number, author)

		for _, number := range r.expected[author] {
			if current[number][pull.Number] {
				continue
			}
			project, ok := byNumber[number]
			if !ok {
				r.log.Debugf("Project %d is configured but was not returned by GitHub", number)
				continue
			}
			additions = append(additions, Addition{PullRequest: pull, Project: project})
		}
	}

	return additions
}

// CurrentFromBoard rebuilds current membership state by walking every card of
// every project. No columns are skipped here; a card in any column counts.
func CurrentFromBoard(svc *boards.Service, projects []boards.Project) (CurrentMemberships, error) {
	current := CurrentMemberships{}
	for _, project := range projects {
		current[project.Number] = map[int]bool{}
	}

	err := svc.ForEachIssue(projects, nil, func(issue boards.Issue, ctx boards.IssueContext) error {
		current[ctx.Project.Number][issue.Number] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return current, nil
}
