package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-reporter/internal/counts"
)

var countsDate string

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Manage manually logged channel counts",
}

var countsSetCmd = &cobra.Command{
	Use:   "set <channel> <count>",
	Short: "Set the manual count for a channel (telegram, signal, linkedin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := args[0]
		value, err := strconv.Atoi(args[1])
		if err != nil || value < 0 {
			return eris.Errorf("count must be a non-negative integer, got %q", args[1])
		}

		store, err := counts.New(cfg.Counts)
		if err != nil {
			return err
		}
		defer store.Close()

		date := resolveDate()
		if err := store.Set(cmd.Context(), date, channel, value); err != nil {
			return err
		}

		fmt.Printf("Logged %d %s contacts for %s\n", value, channel, date)
		return nil
	},
}

var countsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the manual counts for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := counts.New(cfg.Counts)
		if err != nil {
			return err
		}
		defer store.Close()

		date := resolveDate()
		rec, err := store.Get(cmd.Context(), date)
		if err != nil {
			return err
		}

		fmt.Printf("Manual counts for %s:\n", date)
		fmt.Printf("  telegram: %d\n", rec.Telegram)
		fmt.Printf("  signal:   %d\n", rec.Signal)
		fmt.Printf("  linkedin: %d\n", rec.LinkedIn)
		return nil
	},
}

func resolveDate() string {
	if countsDate != "" {
		return countsDate
	}
	return time.Now().UTC().Format("2006-01-02")
}

func init() {
	countsCmd.PersistentFlags().StringVar(&countsDate, "date", "", "date (YYYY-MM-DD), defaults to today")
	countsCmd.AddCommand(countsSetCmd)
	countsCmd.AddCommand(countsShowCmd)
	rootCmd.AddCommand(countsCmd)
}
