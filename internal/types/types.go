package types

import "fmt"

// Skill 一个被发现的技能定义
type Skill struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Owner       string  `json:"owner" yaml:"owner"`
	Repo        string  `json:"repo" yaml:"repo"`
	SkillsPath  string  `json:"skillsPath" yaml:"skillsPath"`
	Path        string  `json:"path" yaml:"path"`
	Content     *string `json:"content" yaml:"content,omitempty"`
	IsInstalled bool    `json:"isInstalled" yaml:"isInstalled"`
	IsFetched   bool    `json:"isFetched" yaml:"isFetched"`
}

// RepoSource identifies a Git-hosted repository by owner and name.
type RepoSource struct {
	Owner string `json:"owner" yaml:"owner"`
	Repo  string `json:"repo" yaml:"repo"`
}

// Key returns the "owner/repo" key used by the persisted records.
func (s RepoSource) Key() string {
	return RepoKey(s.Owner, s.Repo)
}

func (s RepoSource) String() string {
	return s.Key()
}

// RepoKey 生成 "owner/repo" 形式的键
func RepoKey(owner, repo string) string {
	return fmt.Sprintf("%s/%s", owner, repo)
}

// Catalog 内置仓库目录
type Catalog struct {
	Version     string        `json:"version" yaml:"version"`
	LastUpdated string        `json:"lastUpdated" yaml:"lastUpdated"`
	Repos       []CatalogRepo `json:"repos" yaml:"repos"`
}

// CatalogRepo is one catalog entry; URL is in "owner/repo" form.
type CatalogRepo struct {
	URL       string `json:"url" yaml:"url"`
	Highlight bool   `json:"highlight" yaml:"highlight"`
}

// RepoInfo is the merged repository view handed to the front-end.
type RepoInfo struct {
	Owner     string `json:"owner" yaml:"owner"`
	Repo      string `json:"repo" yaml:"repo"`
	IsFetched bool   `json:"isFetched" yaml:"isFetched"`
	IsCustom  bool   `json:"isCustom" yaml:"isCustom"`
	Highlight bool   `json:"highlight" yaml:"highlight"`
}

// Key returns the "owner/repo" key of the repository.
func (r RepoInfo) Key() string {
	return RepoKey(r.Owner, r.Repo)
}

// FetchedRepos maps "owner/repo" to the last fetch timestamp.
type FetchedRepos struct {
	Repos map[string]string `json:"repos" yaml:"repos"`
}

// CustomRepo 用户添加的自定义仓库
type CustomRepo struct {
	Owner      string `json:"owner" yaml:"owner"`
	Repo       string `json:"repo" yaml:"repo"`
	SkillsPath string `json:"skills_path" yaml:"skills_path"`
}

// CustomRepos is the on-disk shape of the custom repository list.
type CustomRepos struct {
	Repos []CustomRepo `json:"repos" yaml:"repos"`
}

// Favorites holds favorited skill ids and repository keys.
type Favorites struct {
	Skills []string `json:"skills" yaml:"skills"`
	Repos  []string `json:"repos" yaml:"repos"`
}

// InstallMethod selects how a skill is installed.
type InstallMethod string

const (
	InstallMethodCopy InstallMethod = "copy"
	InstallMethodNpx  InstallMethod = "npx"
)

// Valid reports whether m is a known install method.
func (m InstallMethod) Valid() bool {
	return m == InstallMethodCopy || m == InstallMethodNpx
}

// Settings 用户设置
type Settings struct {
	InstallMethod InstallMethod `json:"installMethod" yaml:"installMethod"`
}

// DefaultSettings returns the settings used before anything was saved.
func DefaultSettings() Settings {
	return Settings{InstallMethod: InstallMethodCopy}
}
