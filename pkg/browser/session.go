// Package browser drives the github.com web UI through a headless Chrome
// instance, for the project-membership operations the REST API does not
// cover.
package browser

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"boardkeeper/pkg/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
)

// Config holds browser session settings.
type Config struct {
	Headless      bool
	WindowWidth   int
	WindowHeight  int
	StepDelay     time.Duration
	ScreenshotDir string
}

// DefaultConfig matches the window and pacing the UI scripts were written
// against.
func DefaultConfig() Config {
	return Config{
		Headless:      true,
		WindowWidth:   1600,
		WindowHeight:  1280,
		StepDelay:     250 * time.Millisecond,
		ScreenshotDir: "tmp",
	}
}

// Session owns one headless browser and the single page it drives.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	creds   config.Credentials
	cfg     Config
	log     *logrus.Entry
}

// NewSession launches a headless Chrome and opens a blank page.
func NewSession(creds config.Credentials, cfg Config, log *logrus.Entry) (*Session, error) {
	log.Debug("Creating browser")

	controlURL, err := launcher.New().Headless(cfg.Headless).Launch()
	if err != nil {
		return nil, errors.Wrap(err, "launch browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, errors.Wrap(err, "connect to browser")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return nil, errors.Wrap(err, "open page")
	}

	log.Debugf("Resizing window to %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.WindowWidth,
		Height:            cfg.WindowHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = browser.Close()
		return nil, errors.Wrap(err, "resize window")
	}

	return &Session{
		browser: browser,
		page:    page,
		creds:   creds,
		cfg:     cfg,
		log:     log,
	}, nil
}

// RunAndClose launches a session, runs body, and closes the browser on every
// exit path. If body fails a diagnostic screenshot is captured before the
// browser is released.
func RunAndClose(creds config.Credentials, cfg Config, log *logrus.Entry, body func(*Session) error) error {
	session, err := NewSession(creds, cfg, log)
	if err != nil {
		return err
	}
	defer session.Close()

	log.Info("Starting execution")

	if err := body(session); err != nil {
		log.WithError(err).Error("Browser run failed")
		session.captureScreenshot()
		return err
	}

	log.Info("Complete")
	return nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.log.Info("Closing browser...")
	if err := s.browser.Close(); err != nil {
		s.log.WithError(err).Warn("Browser did not close cleanly")
	}
}

// Visit navigates the page to url and waits for it to load.
func (s *Session) Visit(url string) error {
	s.log.Debugf("Visiting %s", url)
	if err := s.page.Navigate(url); err != nil {
		return errors.Wrapf(err, "navigate to %s", url)
	}
	return s.page.WaitLoad()
}

// LogIn signs in to github.com, answering the two-factor prompt with a TOTP
// code when one is presented.
func (s *Session) LogIn() error {
	if err := s.Visit("https://github.com/login"); err != nil {
		return err
	}

	s.log.Debug("Fill out username and password")

	usernameField, err := s.page.Element("#login_field")
	if err != nil {
		return errors.Wrap(err, "find username field")
	}
	if err := usernameField.Input(s.creds.Username); err != nil {
		return errors.Wrap(err, "fill username")
	}

	passwordField, err := s.page.Element("#password")
	if err != nil {
		return errors.Wrap(err, "find password field")
	}
	if err := passwordField.Input(s.creds.Password); err != nil {
		return errors.Wrap(err, "fill password")
	}
	if err := passwordField.Type(input.Enter); err != nil {
		return errors.Wrap(err, "submit login form")
	}
	if err := s.page.WaitLoad(); err != nil {
		return err
	}

	info, err := s.page.Info()
	if err != nil {
		return errors.Wrap(err, "read page info")
	}

	if strings.Contains(info.URL, "two-factor") {
		s.log.Debug("Fill out two-factor auth")

		code, err := totp.GenerateCode(s.creds.OTPSecret, time.Now())
		if err != nil {
			return errors.Wrap(err, "generate TOTP code")
		}

		otpField, err := s.page.Element("#otp")
		if err != nil {
			return errors.Wrap(err, "find OTP field")
		}
		if err := otpField.Input(code); err != nil {
			return errors.Wrap(err, "fill OTP code")
		}
		if err := otpField.Type(input.Enter); err != nil {
			return errors.Wrap(err, "submit OTP form")
		}
		if err := s.page.WaitLoad(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) captureScreenshot() {
	filename := fmt.Sprintf("screenshot-%d.png", time.Now().UTC().Unix())
	path := filepath.Join(s.cfg.ScreenshotDir, filename)

	s.log.Debugf("Capturing screenshot... %s", filename)

	data, err := s.page.Screenshot(true, nil)
	if err != nil {
		s.log.WithError(err).Warn("Screenshot capture failed")
		return
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		s.log.WithError(err).Warnf("Could not write screenshot to %s", path)
	}
}
