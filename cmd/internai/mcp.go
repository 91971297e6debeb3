package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/internai/internai/internal/mcpserver"
	"github.com/internai/internai/internal/search"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve InternAI tools over MCP (stdio)",
	Long:  "Runs an MCP server on stdin/stdout exposing live_jobs, check_eligibility, resources_for_role, interview_questions and sanitize_link.",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol; logs would corrupt it.
	logger := silentLogger()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var local search.LocalSearcher
	if st, err := openStore(ctx, cfg); err == nil {
		defer st.Close()
		local = st
	}

	svc, _, closeCache, err := setupSearch(ctx, cfg, local, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	return mcpserver.New(svc, setupAdvisor(cfg, logger), version).ServeStdio()
}
