package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgview/pkg/hrefs"
	"github.com/matzehuels/pkgview/pkg/registry"
	"github.com/matzehuels/pkgview/pkg/versions"
)

// versionsOpts holds the command-line flags for the versions command.
type versionsOpts struct {
	src      recordSource
	filename string
	origin   string // prefix for printed links; defaults to the configured origin
}

// versionsCommand creates the versions command, which lists what the
// version switcher of the files view offers.
func (c *CLI) versionsCommand() *cobra.Command {
	var opts versionsOpts

	cmd := &cobra.Command{
		Use:   "versions <package>[@version]",
		Short: "List published versions, newest first, with their files links",
		Example: `  pkgview versions react
  pkgview versions react@18.2.0 --filename index.js --origin https://unpkg.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, current, err := c.loadRecord(cmd.Context(), opts.src, args[0])
			if err != nil {
				return err
			}
			origin := opts.origin
			if origin == "" {
				origin = c.cfg.Server.Origin
			}
			printVersions(cmd.OutOrStdout(), rec, current, hrefs.Builder{Origin: origin}, strings.TrimPrefix(opts.filename, "/"))
			return nil
		},
	}

	opts.src.addFlags(cmd)
	cmd.Flags().StringVar(&opts.filename, "filename", "", "file within the package")
	cmd.Flags().StringVar(&opts.origin, "origin", "", "origin prepended to links")

	return cmd
}

// printVersions lists every version of rec newest first. Each line carries the
// dist-tags pointing at it and the files link the switcher would navigate to.
func printVersions(w io.Writer, rec *registry.PackageRecord, current string, b hrefs.Builder, filename string) {
	tagsByVersion := make(map[string][]string, len(rec.DistTags))
	for _, tag := range sortedTags(rec.DistTags) {
		v := rec.DistTags[tag]
		tagsByVersion[v] = append(tagsByVersion[v], tag)
	}

	template := b.Files(rec.Name, hrefs.VersionPlaceholder, filename)
	for _, v := range versions.SortDescending(rec.VersionKeys()) {
		marker := " "
		label := StyleValue.Render(v)
		if v == current {
			marker = styleCurrent.Render(iconCurrent)
			label = styleCurrent.Render(v)
		}
		line := marker + " " + label
		if tags := tagsByVersion[v]; len(tags) > 0 {
			line += " " + StyleTag.Render("("+strings.Join(tags, ", ")+")")
		}
		fmt.Fprintln(w, line)
		printDetail(w, "%s", hrefs.Fill(template, v))
	}
	printNewline(w)
	printSuccess(w, "%d versions of %s", len(rec.Versions), rec.Name)
}

// sortedTags returns the tag names in a stable display order.
func sortedTags(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
