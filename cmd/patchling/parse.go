package patchling

import (
	"fmt"

	"github.com/patchling/patchling/pkg/config"
	"github.com/patchling/patchling/pkg/logging"
	"github.com/patchling/patchling/pkg/pdx"
	"github.com/spf13/cobra"
)

func newParseCmd(s *session) *cobra.Command {
	var braces bool

	cmd := &cobra.Command{
		Use:     "parse FILE",
		Short:   MsgParseShort,
		Long:    MsgParseLong,
		Example: MsgParseExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.parse")
			path := args[0]

			data, err := s.fs.ReadFile(path)
			if err != nil {
				return fmt.Errorf(MsgErrReadFile, path, err)
			}
			block, err := pdx.Parse(path, data)
			if err != nil {
				return err
			}
			logger.Debug().Str("file", path).Int("entries", block.Len()).Msg("Parsed file")

			out := s.cfg.Output
			if out.Format == config.FormatPDX {
				return writeText(cmd.OutOrStdout(), pdx.Render(block, braces, out.Pretty))
			}
			return encode(cmd.OutOrStdout(), out.Format, out.Pretty, block)
		},
	}

	cmd.Flags().BoolVar(&braces, "braces", false, MsgFlagBraces)
	return cmd
}
