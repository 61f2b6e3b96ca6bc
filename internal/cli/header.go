package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgview/pkg/errors"
	"github.com/matzehuels/pkgview/pkg/header"
	"github.com/matzehuels/pkgview/pkg/observability"
)

// headerOpts holds the command-line flags for the header command.
type headerOpts struct {
	src      recordSource
	filename string // file within the package the view points at
	jsonOut  bool   // print the header as JSON
}

// headerCommand creates the header command.
func (c *CLI) headerCommand() *cobra.Command {
	var opts headerOpts

	cmd := &cobra.Command{
		Use:   "header <package>[@version]",
		Short: "Derive the files-view header for a package version",
		Long: `Derive the files-view header for a package version.

The version may be an exact version or a dist-tag; it defaults to "latest".`,
		Example: `  pkgview header react
  pkgview header @babel/core@7.24.0 --filename package.json
  pkgview header left-pad@next --file ./left-pad.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHeader(cmd, args[0], opts)
		},
	}

	opts.src.addFlags(cmd)
	cmd.Flags().StringVar(&opts.filename, "filename", "", "file within the package")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the header as JSON")

	return cmd
}

func (c *CLI) runHeader(cmd *cobra.Command, spec string, opts headerOpts) error {
	if err := errors.ValidateFilePath(opts.filename); err != nil {
		return err
	}
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	rec, version, err := c.loadRecord(ctx, opts.src, spec)
	if err != nil {
		return err
	}

	start := time.Now()
	h, err := header.Default().Resolve(rec, version, strings.TrimPrefix(opts.filename, "/"))
	observability.Resolve().OnResolve(ctx, rec.Name, version, time.Since(start), err)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %s@%s", h.Name, h.Version))

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		return writeJSON(out, h)
	}
	printHeader(out, h)
	return nil
}

// printHeader renders h for a terminal.
func printHeader(w io.Writer, h *header.Header) {
	fmt.Fprintln(w, StyleTitle.Render(h.Name+"@"+h.Version))
	if h.Description != "" {
		printDetail(w, "%s", h.Description)
	}
	printNewline(w)

	printKeyValue(w, "versions", fmt.Sprintf("%d", len(h.Versions)))
	if len(h.Versions) > 0 {
		printKeyValue(w, "newest", h.Versions[0])
	}
	for _, tag := range sortedTags(h.Tags) {
		printKeyValue(w, "tag", StyleTag.Render(tag)+" "+h.Tags[tag])
	}
	printKeyValue(w, "path", h.PathTemplate)
	if h.Homepage != nil {
		printLink(w, "homepage", h.Homepage.Text, h.Homepage.URL)
	}
	if h.Repository != nil {
		printLink(w, "repository", h.Repository.Text, h.Repository.URL)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode output")
	}
	return nil
}
