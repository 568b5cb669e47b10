package cmd

import (
	"fmt"
	"regexp"

	"boardkeeper/pkg/boards"
	"boardkeeper/pkg/templating"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// titleRefPattern matches TargetProcess references like "TP#123", "TP-123",
// or "TP 123" in an issue title.
var titleRefPattern = regexp.MustCompile(`(?i)TP[#\-\s]?(\d+)`)

type unaccountedLine struct {
	URL           string
	SlackUsername string
}

type unaccountedProject struct {
	Name   string
	Issues []unaccountedLine
}

type unaccountedReport struct {
	Projects []unaccountedProject
}

var unaccountedCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "unaccounted",
	Short: "Lists issues that carry no TargetProcess reference.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := setupAPI()
		if err != nil {
			return err
		}
		if cfg.TargetProcessHost == "" {
			return errors.New("targetProcessHost must be set in config for this command")
		}

		// Body references look like "<host>/<anything>/<id>".
		bodyRefPattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(cfg.TargetProcessHost) + `/[^/]*/(\d+)`)
		if err != nil {
			return errors.Wrap(err, "compile body reference pattern")
		}

		projects, err := svc.FetchProjects(cfg.ProjectNumbers())
		if err != nil {
			return err
		}

		directory := cfg.Directory()
		grouped := map[string][]unaccountedLine{}

		err = svc.ForEachIssue(projects, cfg.SkipColumns, func(issue boards.Issue, ctx boards.IssueContext) error {
			if bodyRefPattern.MatchString(issue.Body) || titleRefPattern.MatchString(issue.Title) {
				return nil
			}

			line := unaccountedLine{URL: issue.HTMLURL}
			if slackUser, ok := directory.FindSlackByGithub(issue.User.Login); ok {
				line.SlackUsername = slackUser
			}
			grouped[ctx.Project.Name] = append(grouped[ctx.Project.Name], line)
			return nil
		})
		if err != nil {
			return err
		}

		var report unaccountedReport
		for _, project := range projects {
			if lines := grouped[project.Name]; len(lines) > 0 {
				report.Projects = append(report.Projects, unaccountedProject{
					Name:   project.Name,
					Issues: lines,
				})
			}
		}

		out, err := templating.RenderTemplate(unaccountedTemplate, report)
		if err != nil {
			return err
		}

		fmt.Println(out)
		return nil
	},
})
