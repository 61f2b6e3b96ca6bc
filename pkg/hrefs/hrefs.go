// Package hrefs builds links into the package browser.
//
// The files view of a package lives at
//
//	/<package>@<version>/files/<filename>
//
// Scoped package names keep their "@scope/name" shape. Every other
// character that is not valid in a path segment is percent-encoded.
package hrefs

import (
	"net/url"
	"strings"
)

// VersionPlaceholder marks where a version string is substituted into a path
// template. It is inserted verbatim and never escaped.
const VersionPlaceholder = "%s"

// Builder builds absolute or origin-relative links.
type Builder struct {
	// Origin is prepended to every href, e.g. "https://app.unpkg.com".
	// Empty means origin-relative paths.
	Origin string
}

// Files returns the href of filename inside the files view of pkg@version.
// A version equal to [VersionPlaceholder] is kept as-is so the result can be
// used as a template.
func (b Builder) Files(pkg, version, filename string) string {
	return strings.TrimSuffix(b.Origin, "/") + FilesPath(pkg, version, filename)
}

// FilesPath is [Builder.Files] without an origin.
func FilesPath(pkg, version, filename string) string {
	var sb strings.Builder
	sb.WriteString("/")
	sb.WriteString(escapePackage(pkg))
	sb.WriteString("@")
	if version == VersionPlaceholder {
		sb.WriteString(version)
	} else {
		sb.WriteString(url.PathEscape(version))
	}
	sb.WriteString("/files")

	filename = strings.TrimPrefix(filename, "/")
	if filename != "" {
		sb.WriteString("/")
		sb.WriteString(escapePath(filename))
	}
	return sb.String()
}

// Fill substitutes version for the placeholder in a template produced by
// [FilesPath]. Only the first placeholder is replaced.
func Fill(template, version string) string {
	return strings.Replace(template, VersionPlaceholder, url.PathEscape(version), 1)
}

func escapePackage(pkg string) string {
	if scope, name, ok := strings.Cut(pkg, "/"); ok && strings.HasPrefix(scope, "@") {
		return "@" + url.PathEscape(scope[1:]) + "/" + url.PathEscape(name)
	}
	return url.PathEscape(pkg)
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
