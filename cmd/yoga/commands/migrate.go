package commands

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			return rt.migrate(cmd.Context())
		},
	}
}
