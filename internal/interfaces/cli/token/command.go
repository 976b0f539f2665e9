package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"tempus/internal/infrastructure/auth"
	"tempus/internal/infrastructure/config"
)

var (
	env      string
	operator string
	role     string
)

// NewCommand issues operator access tokens. The engine has no operator
// login flow; staff tokens are minted here and handed out by an admin.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator access token",
		Long:  `Mint a signed JWT for a staff operator. The token authorizes the operator API until it expires.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&operator, "operator", "o", "", "Operator name embedded in the token (required)")
	cmd.Flags().StringVarP(&role, "role", "r", "staff", "Operator role (staff, admin)")
	cmd.MarkFlagRequired("operator")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinute)

	signed, expiresIn, err := jwtService.Generate(operator, role)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Printf("\nOperator token for %q (role %s):\n\n  %s\n\nExpires in %d seconds.\n", operator, role, signed, expiresIn)
	return nil
}
