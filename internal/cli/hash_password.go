package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookcook/api/internal/auth"
	"github.com/bookcook/api/internal/config"
)

func newHashPasswordCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password at the configured cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			hashed, err := auth.NewHasher(cfg.BcryptCost).Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}
