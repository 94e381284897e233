package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/handlers/dto"

	"gopkg.in/yaml.v3"
)

const (
	tableFormat = "table"
	jsonFormat  = "json"
	yamlFormat  = "yaml"
)

var legalOutputTypes = []string{tableFormat, jsonFormat, yamlFormat}

func validateOutput(output string) error {
	if !slices.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	// yaml.v3 не знает про json-теги, поэтому идём через json
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(generic); err != nil {
		return err
	}
	return encoder.Close()
}

func printRankedTable(w io.Writer, ranked []gigstatus.Ranked) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tPOSTED\tDEADLINE\tACTIVE\tDESCRIPTION")
	for _, r := range ranked {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%t\t%s\n",
			r.Gig.ID,
			r.Info.Status,
			r.Info.Priority,
			daysLabel(r.Info.DaysSincePosted, "ago"),
			daysLabel(r.Info.DaysUntilDeadline, "left"),
			r.Info.IsActive,
			r.Gig.Description,
		)
	}
	return tw.Flush()
}

func printStatusInfoTable(w io.Writer, info gigstatus.StatusInfo) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "STATUS\t%s\n", info.Status)
	fmt.Fprintf(tw, "PRIORITY\t%d\n", info.Priority)
	fmt.Fprintf(tw, "DAYS SINCE POSTED\t%s\n", info.DaysSincePosted)
	fmt.Fprintf(tw, "DAYS UNTIL DEADLINE\t%s\n", info.DaysUntilDeadline)
	fmt.Fprintf(tw, "ACTIVE\t%t\n", info.IsActive)
	fmt.Fprintf(tw, "COLOR\t%s\n", info.StatusColor)
	return tw.Flush()
}

func daysLabel(d gigstatus.DayCount, suffix string) string {
	days, ok := d.Value()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%dd %s", days, suffix)
}

func rankedResponse(ranked []gigstatus.Ranked) []dto.GigResponse {
	return dto.FromRankedList(ranked)
}
