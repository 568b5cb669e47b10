// Package slack posts rendered reports to a Slack incoming webhook.
package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"boardkeeper/pkg"

	"github.com/pkg/errors"
)

type Notification struct {
	WebhookURL string
	Message    string
}

func (n Notification) WithMessage(format string, args ...interface{}) Notification {
	n.Message = fmt.Sprintf(format, args...)
	return n
}

type slackRequestBody struct {
	Text string `json:"text"`
}

// Send posts the message. When no webhook is configured the message is
// logged and dropped rather than treated as an error.
func (n Notification) Send() error {
	if n.WebhookURL == "" {
		pkg.Log.Infof("Skipping slack notification (no webhook configured): %s", n.Message)
		return nil
	}

	body, err := json.Marshal(slackRequestBody{Text: n.Message})
	if err != nil {
		return errors.Wrap(err, "encode slack message")
	}

	request, err := http.NewRequest(http.MethodPost, n.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return errors.Wrap(err, "create slack request")
	}
	request.Header.Add("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	response, err := client.Do(request)
	if err != nil {
		return errors.Wrap(err, "send slack notification")
	}
	defer response.Body.Close()

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(response.Body)
	if buf.String() != "ok" {
		return errors.Errorf("slack webhook rejected the message: %s", buf.String())
	}

	return nil
}
