package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample postings into an empty store",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
		return err
	}
	defer st.Close()

	n, err := st.Seed(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("store already has postings, nothing seeded")
		return nil
	}
	fmt.Printf("seeded %d sample postings\n", n)
	return nil
}
