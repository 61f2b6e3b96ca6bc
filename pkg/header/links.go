package header

import (
	"net/url"

	"github.com/matzehuels/pkgview/pkg/registry"
)

// NormalizeHomepage turns a manifest "homepage" value into a link.
// It returns nil unless raw is an absolute URL with a host. The link text is
// the host followed by the path, with a bare "/" path left off.
//
//	https://example.com/      -> example.com
//	https://example.com/docs/ -> example.com/docs/
func NormalizeHomepage(raw, pkg string) *Link {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}

	text := u.Host
	if u.Path != "" && u.Path != "/" {
		text += u.EscapedPath()
	}
	return &Link{
		URL:   u.String(),
		Text:  text,
		Title: "Visit the " + pkg + " website",
	}
}

// NormalizeRepository turns a manifest "repository" value into a GitHub link
// using the default collaborators. See [Resolver.NormalizeRepository].
func NormalizeRepository(repo registry.Repository, pkg string) *Link {
	return defaultResolver.NormalizeRepository(repo, pkg)
}

var defaultResolver = Default()

// NormalizeRepository returns a link to the GitHub repository of a git
// repository field, or nil when the field is absent, of another kind, or
// does not point at GitHub.
func (r *Resolver) NormalizeRepository(repo registry.Repository, pkg string) *Link {
	git, ok := repo.(registry.GitRepository)
	if !ok {
		return nil
	}
	gh, ok := r.c.ParseRepo(git.URL)
	if !ok {
		return nil
	}
	return &Link{
		URL:   r.c.RepoURL(gh),
		Text:  gh.Owner + "/" + gh.Name,
		Title: "View the " + pkg + " repository on GitHub",
	}
}
