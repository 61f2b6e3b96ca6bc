package registry

import (
	"encoding/json"
	"strings"
)

// KindGit is the only repository type that produces a link.
const KindGit = "git"

// Repository is the "repository" field of a manifest. It is one of
// GitRepository, OtherRepository, or nil when absent or unreadable.
type Repository interface {
	repository()
}

// GitRepository is a repository of type "git".
type GitRepository struct {
	URL       string
	Directory string // Sub-directory of a monorepo, if any.
}

// OtherRepository is a repository of any type other than "git" (svn, hg, ...).
type OtherRepository struct {
	Kind string
	URL  string
}

func (GitRepository) repository()   {}
func (OtherRepository) repository() {}

type repositoryJSON struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Directory string `json:"directory,omitempty"`
}

// decodeRepository accepts the object form {"type", "url", "directory"} and the
// string shorthand ("owner/repo", "github:owner/repo", a bare URL). npm
// normalizes the shorthand to a git repository, so it is treated as one.
// Anything else decodes to nil.
func decodeRepository(raw json.RawMessage) Repository {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		if s = strings.TrimSpace(s); s == "" {
			return nil
		}
		return GitRepository{URL: s}
	}

	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) != nil {
		return nil
	}
	kind := stringField(obj["type"])
	url := stringField(obj["url"])
	if url == "" {
		return nil
	}
	if kind == KindGit {
		return GitRepository{URL: url, Directory: stringField(obj["directory"])}
	}
	return OtherRepository{Kind: kind, URL: url}
}
