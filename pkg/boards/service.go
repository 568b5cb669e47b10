// Package boards fetches and walks the Project -> Column -> Card -> Issue
// hierarchy of classic GitHub project boards.
package boards

import (
	"encoding/json"
	"fmt"
	"net/url"

	"boardkeeper/pkg/ghapi"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Service reads board data for one org/repo pair.
type Service struct {
	client *ghapi.Client
	org    string
	repo   string
	log    *logrus.Entry
}

// NewService returns a board service for the given org and repo.
func NewService(client *ghapi.Client, org, repo string, log *logrus.Entry) *Service {
	return &Service{
		client: client,
		org:    org,
		repo:   repo,
		log:    log,
	}
}

// FetchProjects returns the repo's projects whose numbers appear in numbers.
// The whitelist is an intersection on project number, never on name.
func (s *Service) FetchProjects(numbers []int) ([]Project, error) {
	s.log.Info("Fetching projects")

	records, err := s.client.Fetch(fmt.Sprintf("/repos/%s/%s/projects", s.org, s.repo), nil)
	if err != nil {
		return nil, err
	}

	wanted := map[int]bool{}
	for _, number := range numbers {
		wanted[number] = true
	}

	var projects []Project
	for _, record := range records {
		var project Project
		if err := json.Unmarshal(record, &project); err != nil {
			return nil, errors.Wrap(err, "parse project")
		}
		if wanted[project.Number] {
			projects = append(projects, project)
		}
	}

	return projects, nil
}

// FetchColumns returns the columns of a project, in board order.
func (s *Service) FetchColumns(project Project) ([]Column, error) {
	s.log.Infof("Fetching columns for project #%d '%s'", project.Number, project.Name)

	records, err := s.client.Fetch(project.ColumnsURL, nil)
	if err != nil {
		return nil, err
	}

	var columns []Column
	for _, record := range records {
		var column Column
		if err := json.Unmarshal(record, &column); err != nil {
			return nil, errors.Wrap(err, "parse column")
		}
		columns = append(columns, column)
	}

	return columns, nil
}

// FetchCards returns the cards in a column.
func (s *Service) FetchCards(column Column) ([]Card, error) {
	s.log.Debugf("Fetching cards for column #%d '%s'", column.ID, column.Name)

	records, err := s.client.Fetch(column.CardsURL, nil)
	if err != nil {
		return nil, err
	}

	var cards []Card
	for _, record := range records {
		var card Card
		if err := json.Unmarshal(record, &card); err != nil {
			return nil, errors.Wrap(err, "parse card")
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// FetchIssue resolves the issue a card references. Cards without a content
// URL are notes; they yield (nil, nil) and callers skip them.
func (s *Service) FetchIssue(card Card) (*Issue, error) {
	if card.ContentURL == "" {
		s.log.Debugf("Card #%d has no content, skipping", card.ID)
		return nil, nil
	}

	s.log.Debugf("Fetching issue for card #%d", card.ID)

	record, err := s.client.FetchOne(card.ContentURL, nil)
	if err != nil {
		return nil, err
	}

	issue := new(Issue)
	if err := json.Unmarshal(record, issue); err != nil {
		return nil, errors.Wrapf(err, "parse issue for card #%d", card.ID)
	}

	return issue, nil
}

// FetchPullRequests returns the repo's open pull requests, newest first.
func (s *Service) FetchPullRequests() ([]PullRequest, error) {
	s.log.Info("Fetching open pull requests")

	query := url.Values{}
	query.Set("state", "open")
	query.Set("sort", "created")
	query.Set("direction", "desc")

	records, err := s.client.Fetch(fmt.Sprintf("/repos/%s/%s/pulls", s.org, s.repo), query)
	if err != nil {
		return nil, err
	}

	var pulls []PullRequest
	for _, record := range records {
		var pull PullRequest
		if err := json.Unmarshal(record, &pull); err != nil {
			return nil, errors.Wrap(err, "parse pull request")
		}
		pulls = append(pulls, pull)
	}

	return pulls, nil
}

// FetchPullRequestFiles returns the files touched by a pull request.
func (s *Service) FetchPullRequestFiles(number int) ([]PullRequestFile, error) {
	s.log.Debugf("Fetching files for PR #%d", number)

	records, err := s.client.Fetch(fmt.Sprintf("/repos/%s/%s/pulls/%d/files", s.org, s.repo, number), nil)
	if err != nil {
		return nil, err
	}

	var files []PullRequestFile
	for _, record := range records {
		var file PullRequestFile
		if err := json.Unmarshal(record, &file); err != nil {
			return nil, errors.Wrap(err, "parse pull request file")
		}
		files = append(files, file)
	}

	return files, nil
}

// AddCard creates a card in column referencing the pull request.
func (s *Service) AddCard(column Column, pull PullRequest) error {
	payload := map[string]interface{}{
		"content_id":   pull.ID,
		"content_type": "PullRequest",
	}

	_, err := s.client.Write(fmt.Sprintf("/projects/columns/%d/cards", column.ID), payload)
	return err
}
