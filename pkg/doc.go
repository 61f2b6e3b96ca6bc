// Package pkg provides the libraries behind pkgview, which derives the header
// of a package files view from an npm package document.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [registry] - Package records, their manifests, and record stores
//  2. [versions] - Semantic version ordering
//  3. [header] - The header resolver and the link normalizers
//  4. [github] - GitHub repository URL parsing
//  5. [hrefs] - Files-view path building
//  6. [config], [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The data flow for one header:
//
//	registry.Store (directory of packuments)
//	         ↓
//	[registry] PackageRecord + ResolveVersion (tag or exact version)
//	         ↓
//	[header] Resolver.Resolve
//	    ├── [versions] newest-first ordering
//	    ├── [hrefs] path template with the version placeholder
//	    ├── NormalizeHomepage
//	    └── NormalizeRepository → [github] ParseRepo
//	         ↓
//	header.Header (JSON for the HTTP server, styled text for the CLI)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pkgview/pkg/header"
//	    "github.com/matzehuels/pkgview/pkg/registry"
//	)
//
//	store, _ := registry.NewFileStore("./registry")
//	rec, _ := store.Get(context.Background(), "react")
//	version, _ := rec.ResolveVersion("latest")
//	h, _ := header.Default().Resolve(rec, version, "index.js")
//	fmt.Println(h.Versions[0], h.PathTemplate)
//
// # Collaborators
//
// The resolver takes its repository parser, repository URL builder and path
// builder through [header.Collaborators]. Tests and embedders can replace any
// of them; nil fields fall back to the defaults in [github] and [hrefs].
//
// [registry]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/registry
// [versions]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/versions
// [header]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/header
// [header.Collaborators]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/header#Collaborators
// [github]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/github
// [hrefs]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/hrefs
// [config]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pkgview/pkg/buildinfo
package pkg
