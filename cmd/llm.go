package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VictorTPhan/ella-app/internal/llm"
	"github.com/VictorTPhan/ella-app/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		printLLMEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

func printLLMEvents(w io.Writer, events []store.LLMRequestEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-20s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 106))

	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-20s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.Purpose, 20),
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printLLMEvent(w io.Writer, e *store.LLMRequestEvent) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	if cost := llm.LookupCost(e.Model); cost != nil {
		fmt.Fprintf(w, "Cost:      %s\n", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
	}
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, part.title)
		fmt.Fprintln(w, sep)
		if part.body != "" {
			fmt.Fprintln(w, part.body)
		} else {
			fmt.Fprintln(w, "(not captured)")
		}
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		printUsage(cmd.OutOrStdout(), summarizeUsage(events))
		return nil
	},
}

// usage aggregates calls for one purpose or model.
type usage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	latencyMs    int64
}

func (u usage) AvgLatencyMs() int64 {
	if u.Calls == 0 {
		return 0
	}
	return u.latencyMs / int64(u.Calls)
}

type usageSummary struct {
	ByPurpose []usage
	ByModel   []usage
}

func summarizeUsage(events []store.LLMRequestEvent) usageSummary {
	group := func(key func(store.LLMRequestEvent) string) []usage {
		m := make(map[string]*usage)
		for _, e := range events {
			k := key(e)
			u, ok := m[k]
			if !ok {
				u = &usage{Key: k}
				m[k] = u
			}
			u.Calls++
			u.InputTokens += e.InputTokens
			u.OutputTokens += e.OutputTokens
			u.latencyMs += e.LatencyMs
		}
		out := make([]usage, 0, len(m))
		for _, u := range m {
			out = append(out, *u)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		return out
	}
	return usageSummary{
		ByPurpose: group(func(e store.LLMRequestEvent) string { return e.Purpose }),
		ByModel:   group(func(e store.LLMRequestEvent) string { return e.Model }),
	}
}

func printUsage(w io.Writer, sum usageSummary) {
	if len(sum.ByPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-20s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var totalCalls, totalIn, totalOut int
	for _, u := range sum.ByPurpose {
		fmt.Fprintf(w, "%-20s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(u.Key, 20), u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs())
		totalCalls += u.Calls
		totalIn += u.InputTokens
		totalOut += u.OutputTokens
	}

	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-20s  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var totalCost float64
	var unknownModels []string
	for _, u := range sum.ByModel {
		cost := llm.LookupCost(u.Key)
		if cost == nil {
			unknownModels = append(unknownModels, u.Key)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(w, strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. topic, distractors)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
