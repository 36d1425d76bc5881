package migrations

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type pinger interface {
	Ping(ctx context.Context) error
}

var up = Up

// UpWhenReachable pings the store every interval and applies the migrations after the first
// successful ping. It returns ctx.Err() if the store never answers.
func UpWhenReachable(ctx context.Context, store pinger, uri string, interval time.Duration, log *logrus.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := store.Ping(ctx)
		if err == nil {
			break
		}
		log.WithError(err).Warn("Migrations.UpWhenReachable.storeUnreachable")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	preMigrationVersion, postMigrationVersion, err := up(uri)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
	return nil
}
