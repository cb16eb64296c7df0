package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"
)

// githubSource downloads a single file through the GitHub contents API.
type githubSource struct {
	host       string
	owner      string
	repository string
	path       string
	ref        string

	token string
}

// Creates a new github source from github://<host>/<owner>/<repo>/<path>?ref=<ref>,
// adding authentication data from the environment if it exists.
func newGithubSource(u *url.URL) (*githubSource, error) {
	contract.Requiref(u.Scheme == "github", "url", `scheme must be "github", was %q`, u.Scheme)

	if u.Host == "" {
		return nil, fmt.Errorf("github:// url must have a host part, was: %s", u)
	}

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, fmt.Errorf(
			"github:// url must have the format <host>/<owner>/<repository>/<path>, was: %s", u)
	}

	ref := u.Query().Get("ref")
	if ref == "" {
		ref = "HEAD"
	}

	return &githubSource{
		host:       u.Host,
		owner:      parts[0],
		repository: parts[1],
		path:       parts[2],
		ref:        ref,

		token: os.Getenv("GITHUB_TOKEN"),
	}, nil
}

func (source *githubSource) contentsURL() string {
	return fmt.Sprintf("https://%s/repos/%s/%s/contents/%s?ref=%s",
		source.host, source.owner, source.repository, source.path, url.QueryEscape(source.ref))
}

func (source *githubSource) Download(
	ctx context.Context,
	getHTTPResponse func(*http.Request) (io.ReadCloser, int64, error),
) (io.ReadCloser, int64, error) {
	schemaURL := source.contentsURL()
	logging.V(9).Infof("GitHub schema url: %s", schemaURL)

	var authorization string
	if source.token != "" {
		authorization = fmt.Sprintf("token %s", source.token)
	}
	req, err := buildHTTPRequest(ctx, schemaURL, authorization)
	if err != nil {
		return nil, -1, err
	}
	req.Header.Set("Accept", "application/vnd.github.v4.raw")

	resp, length, err := getHTTPResponse(req)
	if err == nil {
		return resp, length, nil
	}
	return nil, -1, source.explainRateLimit(req, err)
}

// explainRateLimit wraps 403 rate limit errors with a more helpful message.
func (source *githubSource) explainRateLimit(req *http.Request, err error) error {
	var downErr *downloadError
	if !errors.As(err, &downErr) || downErr.code != 403 {
		return err
	}

	// This is a rate limiting error only if x-ratelimit-remaining is 0.
	// https://docs.github.com/en/rest/overview/resources-in-the-rest-api?apiVersion=2022-11-28#exceeding-the-rate-limit
	if downErr.header.Get("x-ratelimit-remaining") != "0" {
		return err
	}

	tryAgain := "."
	if reset, err := strconv.ParseInt(downErr.header.Get("x-ratelimit-reset"), 10, 64); err == nil {
		delay := time.Until(time.Unix(reset, 0).UTC())
		tryAgain = fmt.Sprintf(", try again in %s.", delay)
	}

	addAuth := ""
	if source.token == "" {
		addAuth = " You can set GITHUB_TOKEN to make an authenticated request with a higher rate limit."
	}

	logging.Errorf("GitHub rate limit exceeded for %s%s%s", req.URL, tryAgain, addAuth)
	return fmt.Errorf("rate limit exceeded: %w", err)
}
