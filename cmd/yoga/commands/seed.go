package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-yoga/repository"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	admin := repository.DefaultSeedAdmin
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and the default teachers",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			if migrate {
				if err := rt.migrate(cmd.Context()); err != nil {
					return err
				}
			}

			result, err := rt.manager.Seed(cmd.Context(), admin, repository.DefaultSeedTeachers, rt.hasher())
			if err != nil {
				return err
			}
			rt.logger.Info("seed complete", "users", result.Users, "teachers", result.Teachers)
			return nil
		},
	}

	cmd.Flags().StringVar(&admin.Email, "admin-email", admin.Email, "admin account email")
	cmd.Flags().StringVar(&admin.Password, "admin-password", admin.Password, "admin account password")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run migrations first")
	return cmd
}
