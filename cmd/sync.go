package cmd

import (
	"boardkeeper/pkg"
	"boardkeeper/pkg/browser"
	"boardkeeper/pkg/config"
	"boardkeeper/pkg/reconcile"

	"github.com/cheynewallace/tabby"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ArgSyncDryRun      = "dry-run"
	ArgSyncShowBrowser = "show-browser"
)

var syncCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "sync",
	Short: "Keeps pull requests tagged with their authors' projects.",
})

var syncAPICmd = addCommand(syncCmd, &cobra.Command{
	Use:   "api",
	Short: "Adds missing project cards through the REST API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := setupAPI()
		if err != nil {
			return err
		}

		projects, err := svc.FetchProjects(cfg.ProjectNumbers())
		if err != nil {
			return err
		}

		pulls, err := svc.FetchPullRequests()
		if err != nil {
			return err
		}

		current, err := reconcile.CurrentFromBoard(svc, projects)
		if err != nil {
			return err
		}

		reconciler := reconcile.New(projects, cfg.Projects, cfg.Directory(), pkg.Log)
		additions := reconciler.Plan(pulls, current)

		if len(additions) == 0 {
			pkg.Log.Info("All pull requests are already on their projects.")
			return nil
		}

		if viper.GetBool(ArgSyncDryRun) {
			t := tabby.New()
			t.AddHeader("PR", "AUTHOR", "PROJECT")
			for _, addition := range additions {
				t.AddLine(addition.PullRequest.HTMLURL, addition.PullRequest.User.Login, addition.Project.Name)
			}
			t.Print()
			return nil
		}

		applier := reconcile.NewAPIApplier(svc, reconcile.ColumnPolicy{Column: cfg.CardColumn}, pkg.Log)
		for _, addition := range additions {
			if err := applier.Apply(addition); err != nil {
				return err
			}
		}

		return nil
	},
}, func(cmd *cobra.Command) {
	cmd.Flags().Bool(ArgSyncDryRun, false, "Print the planned additions without applying them.")
})

var syncUICmd = addCommand(syncCmd, &cobra.Command{
	Use:   "ui",
	Short: "Adds missing projects by driving the github.com web UI.",
	Long: `Classic project boards have no write API for the PR sidebar, so this
command signs in to github.com with a headless browser and toggles the
missing projects on each pull request page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := setupAPI()
		if err != nil {
			return err
		}

		creds := config.CredentialsFromEnv()
		if err := creds.ValidateBrowser(); err != nil {
			return err
		}

		projects, err := svc.FetchProjects(cfg.ProjectNumbers())
		if err != nil {
			return err
		}

		pulls, err := svc.FetchPullRequests()
		if err != nil {
			return err
		}

		reconciler := reconcile.New(projects, cfg.Projects, cfg.Directory(), pkg.Log)

		browserCfg := browser.DefaultConfig()
		if viper.GetBool(ArgSyncShowBrowser) {
			browserCfg.Headless = false
		}

		return browser.RunAndClose(creds, browserCfg, pkg.Log, func(session *browser.Session) error {
			if err := session.LogIn(); err != nil {
				return err
			}
			return reconciler.ApplyUI(pulls, session)
		})
	},
}, func(cmd *cobra.Command) {
	cmd.Flags().Bool(ArgSyncShowBrowser, false, "Run the browser with a visible window.")
})
