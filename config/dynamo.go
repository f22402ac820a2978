package config

import (
	"fmt"
	"os"
	"strconv"
)

// DynamoConfig points at the projects table. One partition per project
// (project_id): a header item with segment_id "#project" holds the owner,
// title and caption map, and every other item is one segment keyed by its
// segment_id. All attribute names are snake_case.
type DynamoConfig struct {
	TableName      string
	ConsistentRead bool
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("DYNAMO_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("DYNAMO_TABLE_NAME must be set")
	}

	cfg := &DynamoConfig{
		TableName: tableName,
	}

	if consistent := os.Getenv("DYNAMO_CONSISTENT_READ"); consistent != "" {
		val, err := strconv.ParseBool(consistent)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DYNAMO_CONSISTENT_READ: %w", err)
		}
		cfg.ConsistentRead = val
	}

	return cfg, nil
}
