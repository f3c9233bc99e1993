package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/events"
	"github.com/linesmerrill/car-rental-api/models"
)

func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect or clear the order history of a renter",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show [email]",
		Short: "Print the order history of a renter as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, db, closeFn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return showOrders(cmd, databases.NewUserOrderDatabase(db), databases.NewCarDatabase(db), args[0], conf.Location)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear [email]",
		Short: "Empty the order history of a renter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, db, closeFn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			pub := events.New(conf.KafkaBrokers, conf.KafkaTopic)
			defer pub.Close()
			return clearOrders(cmd, databases.NewUserOrderDatabase(db), pub, args[0], time.Now())
		},
	})
	return cmd
}

func showOrders(cmd *cobra.Command, uoDB databases.UserOrderDatabase, carDB databases.CarDatabase, email string, loc *time.Location) error {
	record, err := uoDB.FindOne(cmd.Context(), bson.M{"userEmail": email})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("no order history found for %s", email)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch orders: %w", err)
	}

	summaries := map[string]models.CarSummary{}
	if ids := record.CarIDs(); len(ids) > 0 {
		cars, err := carDB.Find(cmd.Context(), bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return fmt.Errorf("failed to fetch cars: %w", err)
		}
		for _, c := range cars {
			summaries[c.ID] = c.Summary()
		}
	}
	return writeIndented(cmd.OutOrStdout(), models.NewOrderHistory(*record, summaries, loc))
}

func clearOrders(cmd *cobra.Command, uoDB databases.UserOrderDatabase, pub events.Publisher, email string, now time.Time) error {
	res, err := uoDB.UpdateOne(cmd.Context(),
		bson.M{"userEmail": email},
		bson.M{"$set": bson.M{"orders": []models.Order{}, "updatedAt": now.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no order history found for %s", email)
	}
	if err := pub.Publish(cmd.Context(), events.Event{Type: events.TypeOrdersCleared, UserEmail: email, OccurredAt: now.UTC()}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared order history of %s\n", email)
	return nil
}

func writeIndented(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
