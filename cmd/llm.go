package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/italiano/internal/store"
)

const timeLayout = "2006-01-02 15:04"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded explanation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		if purpose != "" {
			kept := events[:0]
			for _, e := range events {
				if e.Purpose == purpose {
					kept = append(kept, e)
				}
			}
			events = kept
		}
		writeLLMEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("no llm event with id %d", id)
		case err != nil:
			return fmt.Errorf("get llm event: %w", err)
		}
		writeLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage by purpose and model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		writeUsage(out, "Purpose", byPurpose, func(u store.LLMUsage) string { return u.Purpose })
		fmt.Fprintln(out)
		writeUsage(out, "Model", byModel, func(u store.LLMUsage) string { return u.Model })
		return nil
	},
}

func writeLLMEvents(out io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(out, "No LLM requests recorded.")
		return
	}
	fmt.Fprintf(out, "%5s  %-16s  %-10s  %-28s  %11s  %6s  %s\n",
		"ID", "Time", "Purpose", "Model", "Tokens", "Ms", "")
	fmt.Fprintln(out, strings.Repeat("─", 92))
	for _, e := range events {
		mark := "✓"
		if !e.Success {
			mark = "✗"
		}
		fmt.Fprintf(out, "%5d  %-16s  %-10s  %-28s  %5d/%-5d  %6d  %s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), truncate(e.Purpose, 10),
			truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, mark)
	}
}

func writeLLMEvent(out io.Writer, e *store.LLMEvent) {
	fields := [][2]string{
		{"id", strconv.Itoa(e.ID)},
		{"time", e.Timestamp.Local().Format(time.DateTime)},
		{"provider", e.Provider},
		{"model", e.Model},
		{"purpose", e.Purpose},
		{"tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
		{"latency", (time.Duration(e.LatencyMs) * time.Millisecond).String()},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%-9s %s\n", f[0]+":", f[1])
	}
	section(out, "request", e.RequestBody)
	section(out, "response", e.ResponseBody)
}

func section(out io.Writer, name, body string) {
	if body == "" {
		body = "(empty)"
	}
	fmt.Fprintf(out, "\n── %s %s\n%s\n", name, strings.Repeat("─", 56-len(name)), strings.TrimRight(body, "\n"))
}

func writeUsage(out io.Writer, label string, rows []store.LLMUsage, key func(store.LLMUsage) string) {
	fmt.Fprintf(out, "%-30s  %6s  %9s  %9s  %7s\n", label, "Calls", "In", "Out", "Avg ms")
	fmt.Fprintln(out, strings.Repeat("─", 69))
	var sum store.LLMUsage
	for _, u := range rows {
		fmt.Fprintf(out, "%-30s  %6d  %9d  %9d  %7d\n",
			truncate(key(u), 30), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		sum.Calls += u.Calls
		sum.InputTokens += u.InputTokens
		sum.OutputTokens += u.OutputTokens
	}
	fmt.Fprintf(out, "%-30s  %6d  %9d  %9d\n", "total", sum.Calls, sum.InputTokens, sum.OutputTokens)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show requests with this purpose (e.g. explain)")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
