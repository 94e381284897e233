package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gigBoard/internal/repository/gig/fixtures"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type SortOptions struct {
	GlobalOptions

	File   string
	Output string
}

func DefaultSortOptions() *SortOptions {
	return &SortOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdSort() *cobra.Command {
	o := DefaultSortOptions()
	cmd := &cobra.Command{
		Use:   "sort -f FILE",
		Short: "Rank the gigs of a fixtures file by status priority.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *SortOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.File, "file", "f", o.File, "Path to a YAML file with a top-level 'gigs' list.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *SortOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.File == "" {
		return fmt.Errorf("--file is required")
	}
	return validateOutput(o.Output)
}

func (o *SortOptions) Run(ctx context.Context, out io.Writer) error {
	gigs, err := fixtures.Load(o.File, o.location)
	if err != nil {
		return fmt.Errorf("reading %s: %w", o.File, err)
	}

	ranked := o.Classifier().Rank(gigs, o.Moment())

	switch o.Output {
	case jsonFormat:
		return printJSON(out, rankedResponse(ranked))
	case yamlFormat:
		return printYAML(out, rankedResponse(ranked))
	default:
		return printRankedTable(out, ranked)
	}
}
