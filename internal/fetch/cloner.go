package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/smy-101/skillstudio/internal/skillerr"
)

// Cloner materializes a remote repository at dest.
type Cloner interface {
	Clone(ctx context.Context, url, dest string) error
}

// GitCloner shells out to git for a depth-1 clone.
type GitCloner struct {
	Binary string
	// Proxy, when set, is exported to git as HTTPS_PROXY and HTTP_PROXY.
	Proxy string
}

func NewGitCloner() *GitCloner {
	return &GitCloner{Binary: "git"}
}

func (g *GitCloner) Clone(ctx context.Context, url, dest string) error {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, "clone", "--depth", "1", url, dest)
	if g.Proxy != "" {
		cmd.Env = append(os.Environ(), "HTTPS_PROXY="+g.Proxy, "HTTP_PROXY="+g.Proxy)
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return skillerr.Process(fmt.Sprintf("failed to clone %s", url), err)
		}
		return skillerr.Process(fmt.Sprintf("failed to clone %s: %s", url, msg), err)
	}
	return nil
}
