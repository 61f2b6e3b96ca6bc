package header

import (
	"github.com/matzehuels/pkgview/pkg/errors"
	"github.com/matzehuels/pkgview/pkg/github"
	"github.com/matzehuels/pkgview/pkg/hrefs"
	"github.com/matzehuels/pkgview/pkg/registry"
	"github.com/matzehuels/pkgview/pkg/versions"
)

// Header holds everything the files view needs to render its header for
// one package version. It is computed per request and never mutated.
type Header struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`

	// Versions lists every published version, newest first.
	Versions []string `json:"versions"`

	// Tags is the record's dist-tags table, passed through unchanged.
	Tags map[string]string `json:"tags"`

	// PathTemplate is the files-view path of the current file with
	// hrefs.VersionPlaceholder in place of the version.
	PathTemplate string `json:"pathTemplate"`

	Homepage   *Link `json:"homepage,omitempty"`
	Repository *Link `json:"repository,omitempty"`
}

// Link is an external link shown in the header.
type Link struct {
	URL   string `json:"url"`
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// RepoParser extracts a GitHub repository from a repository URL string.
// It must not panic; unrecognized input returns ok=false.
type RepoParser func(raw string) (github.Repo, bool)

// RepoURLBuilder returns the web URL of a repository.
type RepoURLBuilder func(github.Repo) string

// FilesPathBuilder returns the files-view path of filename in pkg@version.
type FilesPathBuilder func(pkg, version, filename string) string

// Collaborators are the pure helpers a Resolver delegates to.
// Nil fields fall back to the defaults.
type Collaborators struct {
	ParseRepo RepoParser
	RepoURL   RepoURLBuilder
	FilesPath FilesPathBuilder
}

// DefaultCollaborators returns the GitHub and hrefs implementations.
func DefaultCollaborators() Collaborators {
	return Collaborators{
		ParseRepo: github.ParseRepo,
		RepoURL:   github.Repo.URL,
		FilesPath: hrefs.FilesPath,
	}
}

// Resolver derives headers from package records. The zero value is not
// usable; create one with [NewResolver]. A Resolver holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	c Collaborators
}

// NewResolver creates a Resolver using c.
func NewResolver(c Collaborators) *Resolver {
	d := DefaultCollaborators()
	if c.ParseRepo == nil {
		c.ParseRepo = d.ParseRepo
	}
	if c.RepoURL == nil {
		c.RepoURL = d.RepoURL
	}
	if c.FilesPath == nil {
		c.FilesPath = d.FilesPath
	}
	return &Resolver{c: c}
}

// Default returns a Resolver wired to the real collaborators.
func Default() *Resolver {
	return NewResolver(DefaultCollaborators())
}

// Resolve computes the header of rec at version for the file being viewed.
//
// version must be a key of rec.Versions; callers are expected to check this
// (see [registry.PackageRecord.ResolveVersion]). A missing key is reported
// as VERSION_NOT_FOUND rather than handled. Malformed homepage or repository
// fields never fail the call: the corresponding link is simply nil.
func (r *Resolver) Resolve(rec *registry.PackageRecord, version, filename string) (*Header, error) {
	if rec == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "package record is nil")
	}
	m, ok := rec.Versions[version]
	if !ok {
		return nil, errors.New(errors.ErrCodeVersionNotFound, "%s@%s not found", rec.Name, version)
	}

	return &Header{
		Name:         rec.Name,
		Version:      version,
		Description:  m.Description,
		Versions:     versions.SortDescending(rec.VersionKeys()),
		Tags:         rec.DistTags,
		PathTemplate: r.c.FilesPath(rec.Name, hrefs.VersionPlaceholder, filename),
		Homepage:     NormalizeHomepage(m.Homepage, rec.Name),
		Repository:   r.NormalizeRepository(m.Repository, rec.Name),
	}, nil
}
