package constants

const (
	// SkillFileName is checked before SkillFileNameLower.
	SkillFileName      = "SKILL.md"
	SkillFileNameLower = "skill.md"

	SkillsCacheFile = "_skills_cache.json"
	GitMetadataDir  = ".git"

	ReposDir   = "repos"
	LocksDir   = "locks"
	StagingDir = "tmp"

	FetchedReposFile = "fetched-repos.json"
	CustomReposFile  = "custom-repos.json"
	FavoritesFile    = "favorites.json"
	SettingsFile     = "settings.json"

	LibraryDir  = "library"
	CatalogFile = "catalog.json"

	// RootSkillsPath marks the repository root as the scan root.
	RootSkillsPath = "."

	AppDirName = "skill-studio"
)

// SkillsPathCandidates 按顺序检查的技能目录候选
var SkillsPathCandidates = []string{"skills", "src/skills", "lib/skills", RootSkillsPath}

// ReadmeNames are tried in order when looking up a repository README.
var ReadmeNames = []string{"README.md", "readme.md", "Readme.md", "README.MD"}
