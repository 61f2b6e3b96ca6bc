package github

import (
	"net/url"
	"strings"
)

// Host is the web host repository links point at.
const Host = "github.com"

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string `json:"owner"`
	Name  string `json:"repo"`
}

// String returns "owner/repo".
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// URL returns the canonical web page of the repository.
func (r Repo) URL() string {
	u := url.URL{
		Scheme: "https",
		Host:   Host,
		Path:   "/" + r.Owner + "/" + r.Name,
	}
	return u.String()
}

// ParseRepo extracts the owner and repository name from the "repository.url"
// field of a package manifest. It accepts the encodings npm accepts:
//
//	owner/repo
//	github:owner/repo
//	https://github.com/owner/repo(.git)
//	git+https://github.com/owner/repo.git
//	git://github.com/owner/repo.git
//	git+ssh://git@github.com/owner/repo.git
//	git@github.com:owner/repo.git
//	github.com/owner/repo
//
// Anything after the repository name (sub-paths, query, fragment) is ignored.
// It returns ok=false for other hosts and for owner or repo names GitHub
// would not accept. It never panics.
func ParseRepo(raw string) (repo Repo, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Repo{}, false
	}

	rest, ok := stripLocation(s)
	if !ok {
		return Repo{}, false
	}

	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) < 2 {
		return Repo{}, false
	}

	owner := parts[0]
	name := strings.TrimSuffix(parts[1], ".git")
	if ValidateRepoRef(owner, name) != nil {
		return Repo{}, false
	}
	return Repo{Owner: owner, Name: name}, true
}

// stripLocation removes the scheme and host from s and returns the
// "owner/repo..." remainder. ok is false when s points somewhere other than GitHub.
func stripLocation(s string) (rest string, ok bool) {
	if after, found := strings.CutPrefix(s, "github:"); found {
		return after, true
	}

	scheme, after, found := strings.Cut(s, "://")
	if !found {
		return stripSCP(s)
	}

	u, err := url.Parse(strings.TrimPrefix(s, "git+"))
	if err != nil {
		// git+ssh://git@github.com:owner/repo.git is common and not a valid URL.
		if strings.HasSuffix(scheme, "ssh") {
			return stripSCP(after)
		}
		return "", false
	}
	switch u.Scheme {
	case "http", "https", "git", "ssh":
	default:
		return "", false
	}
	if !isGitHubHost(u.Hostname()) {
		return "", false
	}
	return u.Path, true
}

// stripSCP handles scp-like locations ([user@]github.com:owner/repo) and the
// bare "owner/repo" shorthand.
func stripSCP(s string) (rest string, ok bool) {
	host, path, found := strings.Cut(s, ":")
	if !found {
		h, p, _ := strings.Cut(s, "/")
		if isGitHubHost(h) {
			return p, true
		}
		if strings.Count(s, "/") != 1 || strings.ContainsAny(s, "@ ") {
			return "", false
		}
		return s, true
	}
	if isGitHubHost(stripUser(host)) {
		return path, true
	}
	return "", false
}

func stripUser(host string) string {
	if i := strings.LastIndex(host, "@"); i >= 0 {
		return host[i+1:]
	}
	return host
}

func isGitHubHost(host string) bool {
	host = strings.ToLower(host)
	return host == Host || host == "www."+Host
}
