package platform

import (
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/config"
	"faceless-timeline/infrastructure/adapters"
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// NewProjectReader builds the reader for the configured project store. The
// returned cleanup releases any connection it opened.
func NewProjectReader(renderConfig *config.RenderConfig, logger outbound.LoggerPort,
	sess *session.Session) (outbound.ProjectReaderPort, func(), error) {
	noop := func() {}

	switch renderConfig.ProjectStore {
	case config.ProjectStoreDynamo:
		dynamoConfig, err := config.GetDynamoConfig()
		if err != nil {
			return nil, noop, err
		}
		return adapters.NewDynamoProjectReader(logger, dynamodb.New(sess), dynamoConfig), noop, nil

	case config.ProjectStorePostgres:
		postgresConfig, err := config.GetPostgresConfig()
		if err != nil {
			return nil, noop, err
		}
		db, err := NewDBConnection(postgresConfig)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					logger.Error(err, "failed to close database")
				}
			}
		}
		return adapters.NewPostgresProjectReader(logger, db), cleanup, nil

	case config.ProjectStoreFile:
		return adapters.NewFileProjectReader(logger, renderConfig.FixturesDir), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown project store %q", renderConfig.ProjectStore)
	}
}
