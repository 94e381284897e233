package cli

import (
	"fmt"
	"time"

	"gigBoard/internal/gigstatus"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalOptions struct {
	Now      string
	Timezone string

	now      time.Time
	location *time.Location
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Timezone: "Local",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Now, "now", o.Now, "Evaluate statuses at this moment (RFC3339). Defaults to the current time.")
	fs.StringVar(&o.Timezone, "timezone", o.Timezone, "Zone for posted dates without an explicit offset.")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", o.Timezone, err)
	}
	o.location = loc

	if o.Now == "" {
		o.now = time.Now()
		return nil
	}
	now, err := time.Parse(time.RFC3339, o.Now)
	if err != nil {
		return fmt.Errorf("--now must be RFC3339: %w", err)
	}
	o.now = now
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

func (o *GlobalOptions) Classifier() *gigstatus.Classifier {
	return gigstatus.NewClassifier(gigstatus.WithLocation(o.location))
}

func (o *GlobalOptions) Moment() time.Time {
	return o.now
}
