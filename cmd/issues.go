// Copyright © 2018 NAME HERE <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"boardkeeper/pkg/boards"
	"boardkeeper/pkg/config"
	"boardkeeper/pkg/people"
	"boardkeeper/pkg/slack"
	"boardkeeper/pkg/templating"
	"boardkeeper/pkg/util"
	"boardkeeper/pkg/workflow"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ArgIssuesSkipColumns = "skip-columns"
	ArgIssuesSlack       = "slack"

	// Issues younger than this don't get an age annotation.
	staleAfterDays = 2

	titleWidth = 45
)

type issueLine struct {
	URL           string
	Title         string
	SlackUsername string
	Days          int
}

type stateReport struct {
	Name   string
	Owner  string
	Issues []issueLine
}

type projectReport struct {
	Name   string
	States []stateReport
}

type issuesReport struct {
	Projects []projectReport
}

var issuesCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "issues",
	Short: "Lists each project's issues grouped by workflow state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := setupAPI()
		if err != nil {
			return err
		}

		projects, err := svc.FetchProjects(cfg.ProjectNumbers())
		if err != nil {
			return err
		}

		classifier := workflow.NewClassifier(cfg.States, cfg.FallbackState)
		directory := cfg.Directory()

		skipColumns := append([]string{}, cfg.SkipColumns...)
		skipColumns = append(skipColumns, viper.GetStringSlice(ArgIssuesSkipColumns)...)

		// project name -> state name -> lines
		grouped := map[string]map[string][]issueLine{}
		now := time.Now()

		err = svc.ForEachIssue(projects, skipColumns, func(issue boards.Issue, ctx boards.IssueContext) error {
			state := classifier.Classify(issue.LabelNames())

			line := issueLine{
				URL:   strings.TrimPrefix(issue.HTMLURL, "https://"),
				Title: util.Truncate(issue.Title, titleWidth),
			}
			if slackUser, ok := directory.FindSlackByGithub(issue.User.Login); ok {
				line.SlackUsername = slackUser
			}
			if days := util.BusinessDaysSince(issue.CreatedAt, now, cfg.Location); days > staleAfterDays {
				line.Days = days
			}

			if grouped[ctx.Project.Name] == nil {
				grouped[ctx.Project.Name] = map[string][]issueLine{}
			}
			grouped[ctx.Project.Name][state] = append(grouped[ctx.Project.Name][state], line)
			return nil
		})
		if err != nil {
			return err
		}

		report := buildIssuesReport(cfg, directory, projects, classifier, grouped)

		out, err := templating.RenderTemplate(issuesTemplate, report)
		if err != nil {
			return err
		}

		fmt.Println(out)

		if viper.GetBool(ArgIssuesSlack) {
			return slack.Notification{WebhookURL: cfg.SlackWebhook}.
				WithMessage("%s", out).
				Send()
		}

		return nil
	},
}, func(cmd *cobra.Command) {
	cmd.Flags().StringSlice(ArgIssuesSkipColumns, []string{}, "Column names to skip, in addition to any from config.")
	cmd.Flags().Bool(ArgIssuesSlack, false, "Post the report to the configured Slack webhook.")
})

func buildIssuesReport(cfg *config.Config, directory *people.Directory, projects []boards.Project, classifier *workflow.Classifier, grouped map[string]map[string][]issueLine) issuesReport {
	var report issuesReport

	for _, project := range projects {
		states := grouped[project.Name]
		if len(states) == 0 {
			continue
		}

		pr := projectReport{Name: project.Name}

		for _, state := range classifier.States() {
			lines := states[state]
			if len(lines) == 0 {
				continue
			}

			// GitHub assigns issue URLs in creation order, so sorting on the
			// URL sorts by creation date.
			sort.Slice(lines, func(i, j int) bool { return lines[i].URL < lines[j].URL })

			pr.States = append(pr.States, stateReport{
				Name:   state,
				Owner:  stateOwner(cfg, directory, project.Number, state),
				Issues: lines,
			})
		}

		report.Projects = append(report.Projects, pr)
	}

	return report
}
