// Package github turns the loosely encoded "repository" field of a package
// manifest into a GitHub owner/repo pair and builds the repository's web URL.
//
// # Parsing
//
// [ParseRepo] accepts every encoding npm itself accepts for a GitHub
// repository (shorthand, github: prefix, HTTPS, git+ and SSH forms) and
// rejects everything else, including other hosts:
//
//	repo, ok := github.ParseRepo("git+https://github.com/facebook/react.git")
//	if ok {
//	    fmt.Println(repo, repo.URL()) // facebook/react https://github.com/facebook/react
//	}
//
// Parsing is total: malformed input yields ok=false, never an error or panic.
//
// # Validation
//
// Owner and repository names are checked against GitHub's naming rules with
// [ValidateOwner] and [ValidateRepo].
package github
