package cmd

import (
	"fmt"
	"regexp"

	"boardkeeper/pkg/templating"
	"boardkeeper/pkg/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type filesLine struct {
	URL    string
	Title  string
	Author string
}

type filesProject struct {
	Name  string
	Pulls []filesLine
}

type filesReport struct {
	Projects []filesProject
}

var filesCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "files",
	Short: "Lists open pull requests that touch files a project owns.",
	Long: `Matches the files changed by each open pull request against the
ownsFiles patterns configured per project, and reports the PRs each
project should know about.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := setupAPI()
		if err != nil {
			return err
		}

		// project number -> compiled ownsFiles patterns
		patterns := map[int][]*regexp.Regexp{}
		for _, number := range cfg.ProjectNumbers() {
			for _, pattern := range cfg.Projects[number].OwnsFiles {
				compiled, err := regexp.Compile(`(?i)` + pattern)
				if err != nil {
					return errors.Wrapf(err, "bad ownsFiles pattern %q for project %d", pattern, number)
				}
				patterns[number] = append(patterns[number], compiled)
			}
		}

		pulls, err := svc.FetchPullRequests()
		if err != nil {
			return err
		}

		grouped := map[int][]filesLine{}
		for _, pull := range pulls {
			files, err := svc.FetchPullRequestFiles(pull.Number)
			if err != nil {
				return err
			}

			var urls []string
			for _, file := range files {
				urls = append(urls, file.RawURL)
			}

			for _, number := range cfg.ProjectNumbers() {
				if !anyMatches(urls, patterns[number]) {
					continue
				}
				grouped[number] = append(grouped[number], filesLine{
					URL:    pull.HTMLURL,
					Title:  util.Truncate(pull.Title, titleWidth),
					Author: pull.User.Login,
				})
			}
		}

		var report filesReport
		for _, number := range cfg.ProjectNumbers() {
			if lines := grouped[number]; len(lines) > 0 {
				report.Projects = append(report.Projects, filesProject{
					Name:  cfg.Projects[number].Name,
					Pulls: lines,
				})
			}
		}

		out, err := templating.RenderTemplate(filesTemplate, report)
		if err != nil {
			return err
		}

		fmt.Println(out)
		return nil
	},
})

func anyMatches(urls []string, patterns []*regexp.Regexp) bool {
	for _, url := range urls {
		for _, pattern := range patterns {
			if pattern.MatchString(url) {
				return true
			}
		}
	}
	return false
}
