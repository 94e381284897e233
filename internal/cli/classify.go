package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ClassifyOptions struct {
	GlobalOptions

	Posted   string
	Deadline string
	Status   string
	Output   string
}

func DefaultClassifyOptions() *ClassifyOptions {
	return &ClassifyOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdClassify() *cobra.Command {
	o := DefaultClassifyOptions()
	cmd := &cobra.Command{
		Use:   "classify --posted DATE [--deadline YYYY-MM-DD] [--status LABEL]",
		Short: "Compute the status of a single gig.",
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

func (o *ClassifyOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Posted, "posted", o.Posted, "Posted date, e.g. \"23rd September 2025, 07:15\".")
	fs.StringVar(&o.Deadline, "deadline", o.Deadline, "Deadline as YYYY-MM-DD. Empty means open-ended.")
	fs.StringVar(&o.Status, "status", o.Status, "Label set by the gig author, e.g. Urgent.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *ClassifyOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if strings.TrimSpace(o.Posted) == "" {
		return fmt.Errorf("--posted is required")
	}
	return validateOutput(o.Output)
}

func (o *ClassifyOptions) Run(ctx context.Context, out io.Writer) error {
	info := o.Classifier().Classify(o.Posted, o.Deadline, o.Status, o.Moment())

	switch o.Output {
	case jsonFormat:
		return printJSON(out, info)
	case yamlFormat:
		return printYAML(out, info)
	default:
		return printStatusInfoTable(out, info)
	}
}
