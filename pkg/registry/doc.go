// Package registry models npm package documents and where they come from.
//
// # Records
//
// A [PackageRecord] holds a package name, its distribution tags and one
// [Manifest] per published version. Manifests are decoded leniently: fields
// such as homepage and repository are authored by third parties and may have
// any shape. A field of an unexpected type decodes as absent instead of
// failing the whole record.
//
// # Repository
//
// The manifest "repository" field is decoded into a closed set of variants:
// [GitRepository], [OtherRepository], or nil. Only code that switches on
// GitRepository can see a git URL.
//
//	switch r := m.Repository.(type) {
//	case registry.GitRepository:
//	    fmt.Println("git", r.URL)
//	case registry.OtherRepository:
//	    fmt.Println("unsupported", r.Kind)
//	}
//
// # Stores
//
// [FileStore] reads packuments from a local directory and [MemoryStore]
// holds them in memory. Neither fetches from the network or caches.
package registry
