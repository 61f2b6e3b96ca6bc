// Package header derives the header of the package files view.
//
// Given a [registry.PackageRecord] and the version being browsed, a [Resolver]
// produces a [Header]: the version list newest first, the dist-tags table, a
// path template the version selector fills in per version, and optional
// homepage and GitHub links.
//
//	h, err := header.Default().Resolve(rec, "18.2.0", "/index.js")
//	if err != nil {
//	    return err // only VERSION_NOT_FOUND or INVALID_INPUT
//	}
//	if h.Repository != nil {
//	    fmt.Println(h.Repository.Text) // facebook/react
//	}
//
// # Untrusted Fields
//
// Homepage and repository come from third-party package.json files. Each is
// normalized independently by [NormalizeHomepage] and
// [Resolver.NormalizeRepository]; anything that cannot be turned into a valid
// link yields nil. These failures are expected and are not reported.
//
// # Collaborators
//
// Repository parsing, repository URLs and files paths are injected through
// [Collaborators] so tests can substitute deterministic fakes.
package header
