package cmd

import (
	"os"

	"boardkeeper/pkg"
	"boardkeeper/pkg/boards"
	"boardkeeper/pkg/config"
	"boardkeeper/pkg/ghapi"
	"boardkeeper/pkg/people"

	"github.com/spf13/viper"
)

func loadConfig() (*config.Config, error) {
	path := os.ExpandEnv(viper.GetString(ArgGlobalConfigFile))
	return config.Load(path)
}

// setupAPI loads config and credentials and builds the board service every
// API-backed command starts from.
func setupAPI() (*config.Config, *boards.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	creds := config.CredentialsFromEnv()
	if err := creds.ValidateAPI(); err != nil {
		return nil, nil, err
	}

	client := ghapi.New(ghapi.Auth{
		Token:    creds.AccessToken,
		Username: creds.Username,
	}, pkg.Log)

	return cfg, boards.NewService(client, cfg.Org, cfg.Repo, pkg.Log), nil
}

// stateOwner resolves the Slack username of the person who owns a workflow
// state for a project. Empty when nobody is configured.
func stateOwner(cfg *config.Config, directory *people.Directory, projectNumber int, state string) string {
	canonical := cfg.Projects[projectNumber].StateOwners[state]
	if canonical == "" {
		return ""
	}
	if slackUser, ok := directory.ToSlackUser(canonical); ok {
		return slackUser
	}
	return ""
}
