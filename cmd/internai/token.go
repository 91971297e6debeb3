package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/internai/internai/internal/httpapi"
	"github.com/internai/internai/internal/model"
)

var tokenOpts struct {
	user string
	role string
	ttl  time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed bearer token for local testing",
	Long:  "Prints an HS256 token signed with the configured JWT secret.",
	RunE:  runToken,
}

func init() {
	f := tokenCmd.Flags()
	f.StringVarP(&tokenOpts.user, "user", "u", "", "user id carried in the token (required)")
	f.StringVarP(&tokenOpts.role, "role", "r", model.RoleStudent, "role: student or admin")
	f.DurationVar(&tokenOpts.ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if tokenOpts.role != model.RoleStudent && tokenOpts.role != model.RoleAdmin {
		return fmt.Errorf("%w: unknown role %q", model.ErrInvalidInput, tokenOpts.role)
	}

	auth := httpapi.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.TrustUserHeader)
	tok, err := auth.IssueToken(tokenOpts.user, tokenOpts.role, tokenOpts.ttl)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
