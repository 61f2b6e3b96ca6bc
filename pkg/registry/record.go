package registry

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/pkgview/pkg/errors"
)

// PackageRecord is a package document as served by an npm-compatible
// registry (a "packument"), reduced to the fields pkgview reads.
type PackageRecord struct {
	Name     string              `json:"name"`
	DistTags map[string]string   `json:"dist-tags"`
	Versions map[string]Manifest `json:"versions"`
}

// Manifest is the package.json of one published version.
// Empty strings mean the field was absent.
type Manifest struct {
	Name        string     `json:"name,omitempty"`
	Version     string     `json:"version,omitempty"`
	Description string     `json:"description,omitempty"`
	Homepage    string     `json:"homepage,omitempty"`
	Repository  Repository `json:"-"`
}

// Decode parses a packument. Only structural problems fail: a missing name,
// or top-level fields of the wrong JSON type. Loosely typed manifest fields
// (description, homepage, repository) never fail decoding.
func Decode(data []byte) (*PackageRecord, error) {
	var rec PackageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode package record")
	}
	if strings.TrimSpace(rec.Name) == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "package record has no name")
	}
	if rec.DistTags == nil {
		rec.DistTags = map[string]string{}
	}
	if rec.Versions == nil {
		rec.Versions = map[string]Manifest{}
	}
	return &rec, nil
}

// VersionKeys returns the keys of Versions in no particular order.
func (r *PackageRecord) VersionKeys() []string {
	return slices.Collect(maps.Keys(r.Versions))
}

// Manifest returns the manifest published as version.
func (r *PackageRecord) Manifest(version string) (Manifest, bool) {
	m, ok := r.Versions[version]
	return m, ok
}

// ResolveVersion maps a version or distribution tag to a published version.
// An empty spec means the "latest" tag. Resolution does not do range matching.
func (r *PackageRecord) ResolveVersion(spec string) (string, error) {
	if spec == "" {
		spec = "latest"
	}
	if _, ok := r.Versions[spec]; ok {
		return spec, nil
	}
	if v, ok := r.DistTags[spec]; ok {
		if _, ok := r.Versions[v]; ok {
			return v, nil
		}
	}
	return "", errors.New(errors.ErrCodeVersionNotFound, "%s@%s not found", r.Name, spec)
}

// UnmarshalJSON decodes a manifest without failing on loosely typed fields.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        json.RawMessage `json:"name"`
		Version     json.RawMessage `json:"version"`
		Description json.RawMessage `json:"description"`
		Homepage    json.RawMessage `json:"homepage"`
		Repository  json.RawMessage `json:"repository"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Manifest{
		Name:        stringField(raw.Name),
		Version:     stringField(raw.Version),
		Description: stringField(raw.Description),
		Homepage:    stringField(raw.Homepage),
		Repository:  decodeRepository(raw.Repository),
	}
	return nil
}

// MarshalJSON encodes the repository back in its object form.
func (m Manifest) MarshalJSON() ([]byte, error) {
	type plain Manifest
	out := struct {
		plain
		Repository *repositoryJSON `json:"repository,omitempty"`
	}{plain: plain(m)}
	switch r := m.Repository.(type) {
	case GitRepository:
		out.Repository = &repositoryJSON{Type: KindGit, URL: r.URL, Directory: r.Directory}
	case OtherRepository:
		out.Repository = &repositoryJSON{Type: r.Kind, URL: r.URL}
	}
	return json.Marshal(out)
}

// stringField returns the value of a JSON string, or "" for any other JSON type.
func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
