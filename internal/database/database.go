package database

import (
	"context"
	"fmt"

	"kartel-backend/internal/env"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type DynamoDBClient struct {
	svc *dynamodb.Client
}

// Config selects the DynamoDB target. Static credentials are optional; when
// absent the default AWS chain applies. Endpoint points the client at a
// local DynamoDB for development.
type Config struct {
	Region       string
	AccessKeyID  string
	SecretKey    string
	SessionToken string
	Endpoint     string
}

// ConfigFromEnv reads the standard deployment variables; serverless hosts
// inject these per stage.
func ConfigFromEnv() Config {
	return Config{
		Region:       env.Get(env.AWSRegion),
		AccessKeyID:  env.Get(env.AWSID),
		SecretKey:    env.Get(env.AWSSecret),
		SessionToken: env.Get(env.AWSToken),
		Endpoint:     env.Get(env.DynamoDBEndpoint),
	}
}

func NewDynamoDBClient(dbCfg Config) (*DynamoDBClient, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(dbCfg.Region),
	}

	if dbCfg.AccessKeyID != "" && dbCfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
				dbCfg.AccessKeyID, dbCfg.SecretKey, dbCfg.SessionToken,
			)),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	clientOpts := []func(*dynamodb.Options){}
	if dbCfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(dbCfg.Endpoint)
		})
	}

	db := dynamodb.NewFromConfig(cfg, clientOpts...)
	return &DynamoDBClient{
		svc: db,
	}, nil
}

type Database struct {
	Client *DynamoDBClient
}

func NewDatabase(cfg Config) (*Database, error) {
	dbClient, err := NewDynamoDBClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("init dynamodb client: %w", err)
	}

	return &Database{
		Client: dbClient,
	}, nil
}
