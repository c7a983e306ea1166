package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/smy-101/skillstudio/internal/skillerr"
	"github.com/smy-101/skillstudio/internal/types"
)

// ParseRepoRef 解析仓库引用
//
// Accepted forms:
//
//	owner/repo
//	github.com/owner/repo
//	https://github.com/owner/repo[.git][/tree/<branch>/...]
func ParseRepoRef(raw string) (types.RepoSource, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return types.RepoSource{}, skillerr.Parse("repository reference cannot be empty", nil)
	}

	path := ref
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "github.com/") {
		if !strings.Contains(ref, "://") {
			ref = "https://" + ref
		}
		parsed, err := url.Parse(ref)
		if err != nil {
			return types.RepoSource{}, skillerr.Parse("invalid repository URL", err)
		}
		if parsed.Host != "github.com" && parsed.Host != "www.github.com" {
			return types.RepoSource{}, skillerr.Parse(fmt.Sprintf("only GitHub repositories are supported, got host %q", parsed.Host), nil)
		}
		path = parsed.Path
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return types.RepoSource{}, skillerr.Parse(fmt.Sprintf("invalid repository %q: expected 'owner/repo'", raw), nil)
	}
	if len(parts) > 2 && !strings.Contains(raw, "://") && !strings.HasPrefix(strings.TrimSpace(raw), "github.com/") {
		return types.RepoSource{}, skillerr.Parse(fmt.Sprintf("invalid repository %q: expected 'owner/repo'", raw), nil)
	}

	source := types.RepoSource{
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}
	if err := ValidateSource(source); err != nil {
		return types.RepoSource{}, err
	}
	return source, nil
}

// ValidateSource rejects owner or repo names that are empty or would escape
// the repository directory.
func ValidateSource(source types.RepoSource) error {
	for _, part := range []struct{ field, value string }{
		{"owner", source.Owner},
		{"repo", source.Repo},
	} {
		if part.value == "" {
			return skillerr.Parse(fmt.Sprintf("%s cannot be empty", part.field), nil)
		}
		if part.value == "." || part.value == ".." || strings.ContainsAny(part.value, `/\`) {
			return skillerr.Parse(fmt.Sprintf("invalid %s %q", part.field, part.value), nil)
		}
	}
	return nil
}
