package boards

import (
	"strings"
)

// IssueContext identifies where in the board hierarchy an issue was found.
type IssueContext struct {
	Project Project
	Column  Column
	Card    Card
}

// ForEachIssue walks every project, column, and card, invoking fn once per
// issue together with its board context. Columns whose names appear in
// skipColumns (case-insensitive) are not enumerated, and note cards are
// skipped silently. Each call walks the live hierarchy again; nothing is
// cached between calls.
func (s *Service) ForEachIssue(projects []Project, skipColumns []string, fn func(Issue, IssueContext) error) error {
	skip := map[string]bool{}
	for _, name := range skipColumns {
		skip[strings.ToLower(name)] = true
	}

	for _, project := range projects {
		columns, err := s.FetchColumns(project)
		if err != nil {
			return err
		}

		for _, column := range columns {
			if skip[strings.ToLower(column.Name)] {
				s.log.Infof("Skipping column %s", column.Name)
				continue
			}

			cards, err := s.FetchCards(column)
			if err != nil {
				return err
			}

			for _, card := range cards {
				issue, err := s.FetchIssue(card)
				if err != nil {
					return err
				}
				if issue == nil {
					continue
				}

				ctx := IssueContext{
					Project: project,
					Column:  column,
					Card:    card,
				}
				if err := fn(*issue, ctx); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
