package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/storage/migrations"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	preMigrationVersion, postMigrationVersion, err := migrations.Up(env.Mongo.URI)
	if err != nil {
		logrus.WithError(err).Fatal("migrations.Up")
		return
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
}
