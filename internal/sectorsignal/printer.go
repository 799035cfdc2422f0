package sectorsignal

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

// PrintConfigInfo writes the active strategy configuration in a
// human-readable table.
func PrintConfigInfo(w io.Writer, registry *strategyconfig.Registry) {
	dateRange := registry.DefaultDateRange()
	fmt.Fprintf(w, "Strategy Configuration\n")
	fmt.Fprintf(w, "Default range: %s ~ %s\n\n", dateRange.StartDate, dateRange.EndDate)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tPARAMETERS")
	for _, name := range registry.Names() {
		params, err := registry.StrategyParams(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, formatParams(params))
	}
	tw.Flush()
}

// PrintSignalResults writes per-sector latest signals. Empty results print a
// short notice instead of an empty table.
func PrintSignalResults(w io.Writer, result *contracts.SectorSignalResult) {
	if result == nil || result.Empty() {
		fmt.Fprintln(w, "No signals calculated.")
		return
	}

	fmt.Fprintf(w, "Sector Signals (%s ~ %s)\n\n", result.StartDate, result.EndDate)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTOR\tSTRATEGY\tLATEST\tPOINTS")
	for _, sector := range result.SectorOrder {
		for _, r := range result.SectorSignals[sector] {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", sector, r.StrategyName, r.LatestSignal.Signal, len(r.Signals))
		}
	}
	tw.Flush()

	if len(result.Failures) > 0 {
		fmt.Fprintf(w, "\nSkipped %d pair(s):\n", len(result.Failures))
		for _, f := range result.Failures {
			fmt.Fprintf(w, "  - %s / %s: %s\n", f.SectorName, f.StrategyName, f.Reason)
		}
	}
}

// PrintSignalSummary writes the headline counts and majority buckets.
func PrintSignalSummary(w io.Writer, summary contracts.SignalSummary) {
	fmt.Fprintf(w, "Summary: %d sector(s), %d signal(s)\n", summary.TotalSectors, summary.TotalSignals())
	fmt.Fprintf(w, "  BUY %d / SELL %d / HOLD %d\n", summary.BuyCount, summary.SellCount, summary.HoldCount)
	if len(summary.MajorityBuySectors) > 0 {
		fmt.Fprintf(w, "  Majority buy:  %s\n", strings.Join(summary.MajorityBuySectors, ", "))
	}
	if len(summary.MajoritySellSectors) > 0 {
		fmt.Fprintf(w, "  Majority sell: %s\n", strings.Join(summary.MajoritySellSectors, ", "))
	}
}

func formatParams(params strategyconfig.Params) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, params[k]))
	}
	return strings.Join(parts, " ")
}
