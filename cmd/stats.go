package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VictorTPhan/ella-app/internal/session"
	"github.com/VictorTPhan/ella-app/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer accuracy per stage and recent topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("topics")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		acc, err := s.EventRepo().StageAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		topics, err := s.EventRepo().RecentTopics(ctx, limit)
		if err != nil {
			return fmt.Errorf("query topics: %w", err)
		}

		printStats(cmd.OutOrStdout(), acc, topics)
		return nil
	},
}

func printStats(w io.Writer, acc []store.StageAccuracy, topics []store.TopicRecord) {
	if len(acc) == 0 && len(topics) == 0 {
		fmt.Fprintln(w, "No games played yet.")
		return
	}

	fmt.Fprintln(w, "Accuracy by Stage")
	fmt.Fprintln(w, strings.Repeat("─", 44))
	fmt.Fprintf(w, "%-12s  %8s  %8s  %10s\n", "Stage", "Correct", "Answered", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 44))

	var total, correct int
	for _, a := range acc {
		fmt.Fprintf(w, "%-12s  %8d  %8d  %9.0f%%\n",
			session.Stage(a.Stage), a.Correct, a.Total, a.Accuracy()*100)
		total += a.Total
		correct += a.Correct
	}
	overall := store.StageAccuracy{Total: total, Correct: correct}
	fmt.Fprintln(w, strings.Repeat("─", 44))
	fmt.Fprintf(w, "%-12s  %8d  %8d  %9.0f%%\n", "TOTAL", correct, total, overall.Accuracy()*100)

	if len(topics) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent Topics")
	fmt.Fprintln(w, strings.Repeat("─", 44))
	for _, t := range topics {
		fmt.Fprintf(w, "%-19s  %s\n", t.Timestamp.Local().Format("2006-01-02 15:04:05"), t.Topic)
	}
}

func init() {
	statsCmd.Flags().IntP("topics", "t", 10, "Number of recent topics to show")
}
