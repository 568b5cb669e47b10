package config

import (
	"os"

	"github.com/pkg/errors"
)

// Credentials are read from the environment, never from the config document.
type Credentials struct {
	AccessToken string
	Username    string
	Password    string
	OTPSecret   string
}

// CredentialsFromEnv reads GitHub credentials from the environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		AccessToken: os.Getenv("GITHUB_ACCESS_TOKEN"),
		Username:    os.Getenv("GITHUB_USERNAME"),
		Password:    os.Getenv("GITHUB_PASSWORD"),
		OTPSecret:   os.Getenv("GITHUB_OTP_SECRET"),
	}
}

// ValidateAPI checks the credentials the REST API path needs.
func (c Credentials) ValidateAPI() error {
	if c.AccessToken == "" || c.Username == "" {
		return errors.New("please set GITHUB_ACCESS_TOKEN and GITHUB_USERNAME")
	}
	return nil
}

// ValidateBrowser checks the credentials the browser login path needs.
func (c Credentials) ValidateBrowser() error {
	if c.Username == "" || c.Password == "" || c.OTPSecret == "" {
		return errors.New("please set GITHUB_USERNAME, GITHUB_PASSWORD, and GITHUB_OTP_SECRET")
	}
	return nil
}
