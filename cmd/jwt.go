package main

import (
	"context"
	"fmt"
	"taskmanager/internal/config"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// JWTCommand constructs the 'jwt' subcommand that generates a signed RS256
// access token for a given subject (user ID) and TTL using the configured
// private key.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates an access token for given user ID",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			userID, err := domain.ParseIdentifier(subject)
			if err != nil {
				logger.Fatal(ctx, "invalid subject", zap.Error(err))
			}

			signed, err := getToken(ctx, cfg).Issue(ctx, userID, ttl)
			if err != nil {
				logger.Fatal(ctx, "could not sign JWT", zap.Error(err))
			}

			fmt.Println(signed) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "JWT subject (e.g., user ID)")
	cmd.Flags().Duration("ttl", 0, "Token TTL (e.g., 30s, 15m, 1h); defaults to the configured access token TTL")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
