package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-reporter/internal/counts"
	"github.com/sells-group/outreach-reporter/internal/outreach"
	"github.com/sells-group/outreach-reporter/internal/report"
	"github.com/sells-group/outreach-reporter/pkg/hubspot"
	"github.com/sells-group/outreach-reporter/pkg/sheets"
	"github.com/sells-group/outreach-reporter/pkg/slack"
)

var reportDryRun bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the daily outreach report now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runner, store, err := buildRunner()
		if err != nil {
			return err
		}
		defer store.Close()

		if reportDryRun {
			rep := runner.Build(ctx)
			fmt.Println("DRY RUN — nothing will be written to Sheets or Slack")
			fmt.Println()
			fmt.Println("Slack message preview:")
			fmt.Println(rep.SlackSummary())
			fmt.Println()
			fmt.Println("Sheets row:", rep.SheetsRow())
			return nil
		}

		_, err = runner.Run(ctx)
		return err
	},
}

// buildRunner assembles the reporting pipeline from configuration. Missing
// publisher credentials disable that publisher rather than failing the run.
func buildRunner() (*report.Runner, counts.Store, error) {
	store, err := counts.New(cfg.Counts)
	if err != nil {
		return nil, nil, err
	}

	crm := hubspot.NewClient(cfg.HubSpot.Token, hubspot.WithBaseURL(cfg.HubSpot.BaseURL))

	var sheetsClient sheets.Client
	if cfg.Sheets.SpreadsheetID != "" {
		source, err := sheets.NewServiceAccountSource(cfg.Sheets.CredentialsFile)
		if err != nil {
			zap.L().Warn("sheets credentials unavailable, spreadsheet publishing disabled", zap.Error(err))
		} else {
			sheetsClient = sheets.NewClient(cfg.Sheets.SpreadsheetID, source)
		}
	}

	var slackClient slack.Client
	if cfg.Slack.BotToken != "" {
		slackClient = slack.NewClient(cfg.Slack.BotToken)
	}

	runner := &report.Runner{
		CRM:       crm,
		Sheets:    sheetsClient,
		Slack:     slackClient,
		Counts:    store,
		Sets:      outreach.NewPipelineSets(cfg.Pipelines.Creator, cfg.Pipelines.Agency, cfg.Pipelines.Affiliate),
		Lookback:  time.Duration(cfg.Report.LookbackHours) * time.Hour,
		Worksheet: cfg.Sheets.Worksheet,
		Channel:   cfg.Slack.ReportChannel,
	}
	return runner, store, nil
}

func init() {
	reportCmd.Flags().BoolVar(&reportDryRun, "dry-run", false, "fetch data but do not write to Sheets or post to Slack")
	rootCmd.AddCommand(reportCmd)
}
