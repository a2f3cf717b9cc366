package patchling

import (
	"fmt"
	"io"
	"strconv"

	"github.com/patchling/patchling/pkg/config"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/pdx"
	"github.com/patchling/patchling/pkg/rules"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resolvedRule is a rule as printed by resolve.
type resolvedRule struct {
	Name     string       `json:"name" yaml:"name"`
	Origin   int          `json:"origin" yaml:"origin"`
	Source   string       `json:"source" yaml:"source"`
	Relation pdx.Relation `json:"relation" yaml:"relation"`
}

func originName(roots []rules.DataRoot, origin int) string {
	if origin < 0 || origin >= len(roots) {
		return MsgDefaultOrigin
	}
	return roots[origin].Name
}

func newResolveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve DIRECTORY EXTENSION [RULE...]",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.resolve")
			directory, extension, names := args[0], args[1], args[2:]

			c, err := s.compiler()
			if err != nil {
				return err
			}
			resolver, err := c.Rules().GetResolver(directory, extension, s.cfg.ResolverMode)
			if err != nil {
				return fmt.Errorf(MsgErrResolve, directory, err)
			}

			var found []rules.Rule
			if len(names) == 0 {
				found = resolver.All()
			} else {
				for _, name := range names {
					found = append(found, resolver.Get(name))
				}
			}
			logger.Info().
				Str("query", resolver.QueryPath()).
				Int("rules", len(found)).
				Msg("Resolved rules")

			roots := c.Rules().DataRoots()
			out := make([]resolvedRule, 0, len(found))
			for _, r := range found {
				out = append(out, resolvedRule{
					Name:     r.Name,
					Origin:   r.Origin,
					Source:   originName(roots, r.Origin),
					Relation: r.Relation,
				})
			}

			if s.cfg.Output.Format != config.FormatPDX {
				return encode(cmd.OutOrStdout(), s.cfg.Output.Format, s.cfg.Output.Pretty, out)
			}
			return writeRules(cmd.OutOrStdout(), out, s.cfg.Output.Pretty)
		},
	}
}

// writeRules prints each rule as PDX preceded by a comment naming its
// source.
func writeRules(w io.Writer, found []resolvedRule, pretty bool) error {
	if len(found) == 0 {
		return writeText(w, MsgNoRules)
	}

	theme := themeFor(w)
	for _, r := range found {
		comment := theme.Origin.Render("# " + r.Source)
		body := pdx.Render(pdx.NewBlock(r.Relation), false, pretty)
		if err := writeText(w, comment); err != nil {
			return err
		}
		if err := writeText(w, body); err != nil {
			return err
		}
	}
	return nil
}

func newRootsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "roots",
		Short:   MsgRootsShort,
		Long:    MsgRootsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.compiler()
			if err != nil {
				return err
			}
			roots := c.Rules().DataRoots()

			if s.cfg.Output.Format != config.FormatPDX {
				return encode(cmd.OutOrStdout(), s.cfg.Output.Format, s.cfg.Output.Pretty, roots)
			}

			data := pterm.TableData{{"#", "Name", "Kind", "Path"}}
			for i, root := range roots {
				kind := "game"
				if root.IsMod {
					kind = "mod"
				}
				data = append(data, []string{strconv.Itoa(i), root.Name, kind, root.RootDir})
			}
			return renderTable(cmd.OutOrStdout(), data)
		},
	}
}

func newFilesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "files DIRECTORY EXTENSION",
		Short:   MsgFilesShort,
		Long:    MsgFilesLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.compiler()
			if err != nil {
				return err
			}
			roots := c.Rules().DataRoots()

			files, err := rules.ResolveFiles(c.FS(), roots, args[0], args[1])
			if err != nil {
				return fmt.Errorf(MsgErrResolve, args[0], err)
			}

			if s.cfg.Output.Format != config.FormatPDX {
				if files == nil {
					files = []rules.ResolvedFile{}
				}
				return encode(cmd.OutOrStdout(), s.cfg.Output.Format, s.cfg.Output.Pretty, files)
			}
			if len(files) == 0 {
				return writeText(cmd.OutOrStdout(), MsgNoFiles)
			}

			data := pterm.TableData{{"#", "Source", "File", "Path"}}
			for _, f := range files {
				data = append(data, []string{
					strconv.Itoa(f.RootIndex),
					roots[f.RootIndex].Name,
					f.FileName,
					f.Path,
				})
			}
			return renderTable(cmd.OutOrStdout(), data)
		},
	}
}
