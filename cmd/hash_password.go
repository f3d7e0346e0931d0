package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"taskmanager/internal/config"
	"taskmanager/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// hashPasswordCommand constructs the 'hash-password' subcommand that prints
// the configured hash of a password read from stdin, e.g. for seeding users.
func hashPasswordCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hashes a password read from stdin with the configured algorithm",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				logger.Fatal(ctx, "could not read password from stdin", zap.Error(err))
			}

			hashed, err := getHasher(ctx, cfg).Hash(ctx, strings.TrimRight(line, "\r\n"))
			if err != nil {
				logger.Fatal(ctx, "could not hash password", zap.Error(err))
			}

			fmt.Println(hashed) //nolint: forbidigo
		},
	}

	return cmd
}
