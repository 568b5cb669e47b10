// Package ghapi is a minimal client for the GitHub REST API, covering the
// projects (classic) endpoints this tool needs. Pagination is driven by the
// Link response header; GitHub defaults to page 1 when no page parameter is
// present, so page 1 is always requested without one.
package ghapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the GitHub API root.
	DefaultBaseURL = "https://api.github.com"

	// acceptHeader opts in to the projects (classic) preview API.
	acceptHeader = "application/vnd.github.inertia-preview+json"
)

// Auth carries the credentials attached to every request.
type Auth struct {
	Token    string
	Username string
}

// Client issues authenticated requests against the GitHub API.
type Client struct {
	baseURL string
	auth    Auth
	http    *http.Client
	log     *logrus.Entry
}

// New returns a client rooted at the public GitHub API.
func New(auth Auth, log *logrus.Entry) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		auth:    auth,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// WithBaseURL points the client at a different API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// StatusError is returned for any response outside the 200-299 range.
// Callers treat it as fatal; no retry is attempted.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("got invalid response from %s: (%d) %s", e.URL, e.StatusCode, e.Body)
}

// Fetch issues GET requests against pathOrURL until the Link header no longer
// advertises a next page, and returns the records from all pages in order.
// We keep our own page counter rather than following the URLs GitHub returns.
func (c *Client) Fetch(pathOrURL string, query url.Values) ([]json.RawMessage, error) {
	logicalPath := c.resolve(pathOrURL, query)

	var records []json.RawMessage
	page := 0

	for {
		page++
		pagedPath := appendPageParam(logicalPath, page)

		body, header, err := c.do(http.MethodGet, pagedPath, nil)
		if err != nil {
			return nil, err
		}

		var pageRecords []json.RawMessage
		if err := json.Unmarshal(body, &pageRecords); err != nil {
			return nil, errors.Wrapf(err, "parse page %d of %s", page, logicalPath)
		}
		records = append(records, pageRecords...)

		if !hasNextPage(header) {
			break
		}
	}

	return records, nil
}

// FetchOne issues a single GET for an endpoint that returns one record
// rather than an array (like a card's content_url).
func (c *Client) FetchOne(pathOrURL string, query url.Values) (json.RawMessage, error) {
	body, _, err := c.do(http.MethodGet, c.resolve(pathOrURL, query), nil)
	return body, err
}

// Write issues a single POST with a JSON payload.
func (c *Client) Write(pathOrURL string, payload interface{}) (json.RawMessage, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode payload")
	}

	body, _, err := c.do(http.MethodPost, c.resolve(pathOrURL, nil), encoded)
	return body, err
}

func (c *Client) do(method, requestURL string, payload []byte) ([]byte, http.Header, error) {
	c.log.Debugf("%s %s", method, requestURL)

	var reader *bytes.Reader
	if payload == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequest(method, requestURL, reader)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create %s request for %s", method, requestURL)
	}

	request.Header.Set("Authorization", "token "+c.auth.Token)
	request.Header.Set("User-Agent", c.auth.Username)
	request.Header.Set("Accept", acceptHeader)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", method, requestURL)
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read response from %s", requestURL)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		statusErr := &StatusError{
			StatusCode: response.StatusCode,
			URL:        requestURL,
			Body:       string(body),
		}
		c.log.WithField("status", response.StatusCode).Errorf("Got invalid response: %s", string(body))
		return nil, nil, statusErr
	}

	return body, response.Header, nil
}

// resolve turns a path or absolute URL plus optional query values into the
// logical request URL, before any page parameter is appended.
func (c *Client) resolve(pathOrURL string, query url.Values) string {
	resolved := pathOrURL
	if !strings.HasPrefix(resolved, "http") {
		resolved = c.baseURL + resolved
	}

	if len(query) > 0 {
		if strings.Contains(resolved, "?") {
			resolved += "&" + query.Encode()
		} else {
			resolved += "?" + query.Encode()
		}
	}

	return resolved
}

// appendPageParam adds the page parameter for pages after the first. Page 1
// is the server default, so it never gets a parameter.
func appendPageParam(requestURL string, page int) string {
	if page == 1 {
		return requestURL
	}
	if strings.Contains(requestURL, "?") {
		return fmt.Sprintf("%s&page=%d", requestURL, page)
	}
	return fmt.Sprintf("%s?page=%d", requestURL, page)
}

// hasNextPage reports whether the Link header advertises another page.
//
//   Link: <https://api.github.com/repositories/1461037/pulls?page=2>; rel="next",
//     <https://api.github.com/repositories/1461037/pulls?page=3>; rel="last"
func hasNextPage(header http.Header) bool {
	return strings.Contains(header.Get("Link"), `rel="next"`)
}
