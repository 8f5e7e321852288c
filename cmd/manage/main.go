// Command manage runs one-off maintenance tasks against the LocalBiz database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"localbiz-backend/internal/config"
	"localbiz-backend/internal/domains/user"
	userRepo "localbiz-backend/internal/domains/user/repository"
	userService "localbiz-backend/internal/domains/user/service"
	"localbiz-backend/internal/infrastructure/database"
	"localbiz-backend/internal/infrastructure/database/migrations"
	"localbiz-backend/internal/shared/response"
	txutil "localbiz-backend/pkg/database"
	"localbiz-backend/pkg/jwt"
	"localbiz-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "manage",
		Short:         "LocalBiz maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(migrateCmd(), createStaffCmd(), versionCmd())
	return cmd
}

// ========================================
// MIGRATE
// ========================================
func migrateCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				names, err := migrations.Names()
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			dbConfig, err := config.LoadDatabaseConfig()
			if err != nil {
				return fmt.Errorf("failed to load database config: %w", err)
			}

			db, err := migrations.Open(dbConfig.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			if err := migrations.Apply(ctx, db); err != nil {
				return err
			}
			log.Println("✅ Migrations applied")
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Only print migration names")
	return cmd
}

// ========================================
// CREATESTAFF
// ========================================
func createStaffCmd() *cobra.Command {
	var req user.RegisterRequest

	cmd := &cobra.Command{
		Use:   "createstaff",
		Short: "Create a staff account, or promote an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("STAFF_PASSWORD")
			}
			req.PasswordConfirm = req.Password

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.App.Environment, cfg.App.LogLevel)

			dbConfig, err := config.LoadDatabaseConfig()
			if err != nil {
				return fmt.Errorf("failed to load database config: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db := database.NewPostgresDB(dbConfig)
			if err := db.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			tokens := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

			var (
				staff   *user.User
				created bool
			)
			// Promote = đổi password + set staff, phải cùng một transaction
			err = txutil.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
				svc := userService.NewUserService(userRepo.NewPostgresRepository(tx), tokens)
				var err error
				staff, created, err = svc.EnsureStaff(ctx, req)
				return err
			})
			if err != nil {
				if errs, ok := response.FieldErrors(err); ok {
					for field, msg := range errs {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
					}
					return errors.New("invalid staff account")
				}
				return err
			}

			verb := "promoted"
			if created {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Staff user %q %s (id %s)\n", staff.Username, verb, staff.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (defaults to $STAFF_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

// ========================================
// VERSION
// ========================================
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "localbiz %s\n", getEnv("APP_VERSION", "dev"))
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
