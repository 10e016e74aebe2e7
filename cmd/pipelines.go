package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-reporter/internal/outreach"
	"github.com/sells-group/outreach-reporter/pkg/hubspot"
)

// pipelinesCmd prints every deal pipeline with its mapped category, for
// checking the creator/agency/affiliate ID lists against the live portal.
var pipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "List deal pipelines and their configured category mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		crm := hubspot.NewClient(cfg.HubSpot.Token, hubspot.WithBaseURL(cfg.HubSpot.BaseURL))
		sets := outreach.NewPipelineSets(cfg.Pipelines.Creator, cfg.Pipelines.Agency, cfg.Pipelines.Affiliate)

		resp, err := crm.ListPipelines(cmd.Context(), "deals")
		if err != nil {
			return err
		}

		fmt.Printf("%-14s  %-30s  %-10s  %s\n", "ID", "LABEL", "CATEGORY", "ARCHIVED")
		for _, p := range resp.Results {
			archived := ""
			if p.Archived {
				archived = "yes"
			}
			fmt.Printf("%-14s  %-30s  %-10s  %s\n", p.ID, p.Label, sets.Category(p.ID), archived)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pipelinesCmd)
}
