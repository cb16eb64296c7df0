package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"
)

// gitlabSource downloads a single file through the GitLab files API.
type gitlabSource struct {
	host    string
	owner   string
	project string
	path    string
	ref     string

	token string
}

// Creates a new GitLab source from gitlab://<host>/<owner>/<project>/<path>?ref=<ref>.
// Uses the GITLAB_TOKEN environment variable for authentication if it's set.
func newGitlabSource(u *url.URL) (*gitlabSource, error) {
	contract.Requiref(u.Scheme == "gitlab", "url", `scheme must be "gitlab", was %q`, u.Scheme)

	if u.Host == "" {
		return nil, fmt.Errorf("gitlab:// url must have a host part, was: %s", u)
	}

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, fmt.Errorf(
			"gitlab:// url must have the format <host>/<owner>/<project>/<path>, was: %s", u)
	}

	ref := u.Query().Get("ref")
	if ref == "" {
		ref = "HEAD"
	}

	return &gitlabSource{
		host:    u.Host,
		owner:   parts[0],
		project: parts[1],
		path:    parts[2],
		ref:     ref,

		token: os.Getenv("GITLAB_TOKEN"),
	}, nil
}

func (source *gitlabSource) Download(
	ctx context.Context,
	getHTTPResponse func(*http.Request) (io.ReadCloser, int64, error),
) (io.ReadCloser, int64, error) {
	project := url.QueryEscape(fmt.Sprintf("%s/%s", source.owner, source.project))

	// Gitlab Files API: https://docs.gitlab.com/ee/api/repository_files.html
	fileURL := fmt.Sprintf(
		"https://%s/api/v4/projects/%s/repository/files/%s/raw?ref=%s",
		source.host, project, url.QueryEscape(source.path), url.QueryEscape(source.ref))
	logging.V(1).Infof("downloading schema from %s", fileURL)

	var authorization string
	if source.token != "" {
		authorization = fmt.Sprintf("Bearer %s", source.token)
	}
	req, err := buildHTTPRequest(ctx, fileURL, authorization)
	if err != nil {
		return nil, -1, err
	}
	req.Header.Set("Accept", "application/octet-stream")
	return getHTTPResponse(req)
}
