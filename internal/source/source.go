// Package source fetches schema documents from local files, plain HTTP(S)
// URLs and GitHub repositories.
package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"
)

// Fetch returns the raw bytes stored at location, which is one of:
//
//	path/to/schema.yaml
//	file:path/to/schema.yaml
//	https://example.com/schema.yaml
//	github://api.github.com/<owner>/<repo>/<path>?ref=<ref>
//	gitlab://gitlab.com/<owner>/<project>/<path>?ref=<ref>
func Fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("empty schema location")
	}

	u, err := url.Parse(location)
	if err != nil || len(u.Scheme) <= 1 {
		// Not a URL, or a Windows drive letter.
		return readFile(location)
	}

	switch u.Scheme {
	case "file":
		return readFile(strings.TrimPrefix(location, "file:"))
	case "http", "https":
		req, err := buildHTTPRequest(ctx, location, "")
		if err != nil {
			return nil, err
		}
		return readAll(getHTTPResponse(req))
	case "github":
		source, err := newGithubSource(u)
		if err != nil {
			return nil, err
		}
		return readAll(source.Download(ctx, getHTTPResponse))
	case "gitlab":
		source, err := newGitlabSource(u)
		if err != nil {
			return nil, err
		}
		return readAll(source.Download(ctx, getHTTPResponse))
	default:
		return nil, fmt.Errorf("unknown schema source scheme: %s", u.Scheme)
	}
}

func readFile(path string) ([]byte, error) {
	logging.V(7).Infof("reading schema from %s", path)
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return body, nil
}

func readAll(body io.ReadCloser, _ int64, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer contract.IgnoreClose(body)
	return io.ReadAll(body)
}
