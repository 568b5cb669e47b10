package cmd

import (
	"boardkeeper/pkg/boards"

	"github.com/cheynewallace/tabby"
	"github.com/spf13/cobra"
)

var pullsCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "pulls",
	Short: "Lists every issue on each tracked project, column by column.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := setupAPI()
		if err != nil {
			return err
		}

		projects, err := svc.FetchProjects(cfg.ProjectNumbers())
		if err != nil {
			return err
		}

		t := tabby.New()
		t.AddHeader("PROJECT", "COLUMN", "ISSUE", "TITLE")

		err = svc.ForEachIssue(projects, nil, func(issue boards.Issue, ctx boards.IssueContext) error {
			t.AddLine(ctx.Project.Name, ctx.Column.Name, issue.HTMLURL, issue.Title)
			return nil
		})
		if err != nil {
			return err
		}

		t.Print()
		return nil
	},
})
