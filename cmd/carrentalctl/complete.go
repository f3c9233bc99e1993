package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linesmerrill/car-rental-api/api/scheduler"
	"github.com/linesmerrill/car-rental-api/databases"
)

func completeExpiredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-expired",
		Short: "Mark every open order whose end date has passed as completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, db, closeFn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			s := scheduler.NewScheduler(
				databases.NewUserOrderDatabase(db),
				databases.NewSchedulerLockDatabase(db),
				conf.Location,
			)
			n, err := s.CompleteExpiredOrders(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed orders in %d records\n", n)
			return nil
		},
	}
}
