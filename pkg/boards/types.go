package boards

import (
	"time"
)

// Project is a classic GitHub project board. Number is the id operators use
// in config; ID is GitHub's internal handle.
type Project struct {
	ID         int64  `json:"id"`
	Number     int    `json:"number"`
	Name       string `json:"name"`
	ColumnsURL string `json:"columns_url"`
}

// Column is one column of a project board.
type Column struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CardsURL string `json:"cards_url"`
}

// Card is a board entry. A card without a content URL is a freeform note and
// has no backing issue.
type Card struct {
	ID         int64  `json:"id"`
	Note       string `json:"note"`
	ContentURL string `json:"content_url"`
}

// User is the author of an issue or pull request.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// Label is a name attached to an issue.
type Label struct {
	Name string `json:"name"`
}

// Issue is a tracked unit of work.
type Issue struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user"`
	Labels    []Label   `json:"labels"`
}

// LabelNames returns the issue's label names.
func (i Issue) LabelNames() []string {
	var names []string
	for _, label := range i.Labels {
		names = append(names, label.Name)
	}
	return names
}

// PullRequest is an open pull request.
type PullRequest struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user"`
}

// PullRequestFile is one file touched by a pull request.
type PullRequestFile struct {
	Filename string `json:"filename"`
	RawURL   string `json:"raw_url"`
}
