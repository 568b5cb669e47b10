package reconcile

import (
	"strings"

	"boardkeeper/pkg/boards"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ColumnPolicy selects the column new cards are created in. An empty Column
// means the project's first column; the card is re-triaged manually from
// there.
type ColumnPolicy struct {
	Column string
}

// APIApplier applies additions by creating cards through the REST API.
type APIApplier struct {
	boards *boards.Service
	policy ColumnPolicy
	log    *logrus.Entry
}

// NewAPIApplier returns an applier that creates cards via the API.
func NewAPIApplier(svc *boards.Service, policy ColumnPolicy, log *logrus.Entry) *APIApplier {
	return &APIApplier{
		boards: svc,
		policy: policy,
		log:    log,
	}
}

// Apply creates a card for the addition's pull request in the target
// project's column chosen by the policy.
func (a *APIApplier) Apply(addition Addition) error {
	a.log.Infof("Adding PR #%d to project '%s'", addition.PullRequest.Number, addition.Project.Name)

	columns, err := a.boards.FetchColumns(addition.Project)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return errors.Errorf("project '%s' has no columns", addition.Project.Name)
	}

	column, err := a.policy.pick(columns)
	if err != nil {
		return errors.Wrapf(err, "choose column in project '%s'", addition.Project.Name)
	}

	return a.boards.AddCard(column, addition.PullRequest)
}

func (p ColumnPolicy) pick(columns []boards.Column) (boards.Column, error) {
	if p.Column == "" {
		return columns[0], nil
	}
	for _, column := range columns {
		if strings.EqualFold(column.Name, p.Column) {
			return column, nil
		}
	}
	return boards.Column{}, errors.Errorf("no column named %q", p.Column)
}

// PullRequestPage is the page-object surface the UI applier drives. The
// browser package provides the real implementation.
type PullRequestPage interface {
	CurrentProjects() ([]string, error)
	ToggleProject(name string) error
}

// PageVisitor opens the page for a pull request URL.
type PageVisitor interface {
	VisitPullRequest(url string) (PullRequestPage, error)
}

// ApplyUI reconciles through the web UI: for each pull request by a tracked
// author it reads the current project names from the PR sidebar and toggles
// each missing project once. Toggles are not verified; the next run re-reads
// the sidebar and plans nothing if they took effect.
func (r *Reconciler) ApplyUI(pulls []boards.PullRequest, visitor PageVisitor) error {
	byNumber := map[int]string{}
	for _, project := range r.projects {
		byNumber[project.Number] = project.Name
	}
	// Fall back to configured names for projects GitHub did not return.
	for number, projectConfig := range r.configs {
		if _, ok := byNumber[number]; !ok {
			byNumber[number] = projectConfig.Name
		}
	}

	for _, pull := range pulls {
		author := strings.ToLower(pull.User.Login)
		if !r.whitelist[author] {
			r.log.Debugf("Ignoring PR #%d by untracked author %q", pull.Number, pull.User.Login)
			continue
		}

		r.log.Infof("Analyzing PR: #%d (%s)", pull.Number, author)

		page, err := visitor.VisitPullRequest(pull.HTMLURL)
		if err != nil {
			return err
		}

		names, err := page.CurrentProjects()
		if err != nil {
			return err
		}
		currentNames := map[string]bool{}
		for _, name := range names {
			currentNames[strings.ToLower(name)] = true
		}

		for _, number := range r.expected[author] {
			name := byNumber[number]
			if name == "" || currentNames[strings.ToLower(name)] {
				continue
			}
			r.log.Infof("  - Adding to project: '%s'", name)
			if err := page.ToggleProject(name); err != nil {
				return err
			}
		}
	}

	return nil
}
