package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mitchellh/mapstructure"

	"github.com/math-u-t/Drive-CLI/internal/logger"
	"github.com/math-u-t/Drive-CLI/pkg/store/content"
	contentfs "github.com/math-u-t/Drive-CLI/pkg/store/content/fs"
	contentmemory "github.com/math-u-t/Drive-CLI/pkg/store/content/memory"
	contents3 "github.com/math-u-t/Drive-CLI/pkg/store/content/s3"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
	drivebadger "github.com/math-u-t/Drive-CLI/pkg/store/drive/badger"
	drivememory "github.com/math-u-t/Drive-CLI/pkg/store/drive/memory"
	"github.com/math-u-t/Drive-CLI/pkg/store/session"
	sessionbadger "github.com/math-u-t/Drive-CLI/pkg/store/session/badger"
	sessionmemory "github.com/math-u-t/Drive-CLI/pkg/store/session/memory"
)

// CreateDriveStore creates the drive metadata store selected by the
// configuration.
//
// Supported types:
//   - "memory": ephemeral in-memory tree
//   - "badger": persistent BadgerDB-backed tree
func CreateDriveStore(ctx context.Context, cfg *DriveConfig) (drive.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case "memory":
		return drivememory.NewMemoryDriveStore(cfg.Owner), nil
	case "badger":
		return createBadgerDriveStore(cfg)
	default:
		return nil, fmt.Errorf("unknown drive store type: %q (supported: memory, badger)", cfg.Type)
	}
}

func createBadgerDriveStore(cfg *DriveConfig) (drive.Store, error) {
	type badgerOptions struct {
		Path     string `mapstructure:"path"`
		InMemory bool   `mapstructure:"in_memory"`
	}

	var opts badgerOptions
	if err := mapstructure.Decode(cfg.Badger, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode badger drive store options: %w", err)
	}
	if opts.Path == "" && !opts.InMemory {
		return nil, fmt.Errorf("badger drive store: path is required")
	}

	store, err := drivebadger.NewBadgerDriveStore(drivebadger.Options{
		Path:     opts.Path,
		Owner:    cfg.Owner,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create badger drive store: %w", err)
	}
	return store, nil
}

// CreateContentStore creates the content store selected by the
// configuration.
//
// Supported types:
//   - "memory": ephemeral in-memory bodies
//   - "filesystem": local directory, one file per content ID
//   - "s3": Amazon S3 or compatible object storage
func CreateContentStore(ctx context.Context, cfg *ContentConfig) (content.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case "memory":
		return contentmemory.NewMemoryContentStore(), nil
	case "filesystem":
		return createFilesystemContentStore(ctx, cfg.Filesystem)
	case "s3":
		return createS3ContentStore(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown content store type: %q (supported: memory, filesystem, s3)", cfg.Type)
	}
}

func createFilesystemContentStore(ctx context.Context, options map[string]any) (content.Store, error) {
	type filesystemOptions struct {
		Path string `mapstructure:"path"`
	}

	var opts filesystemOptions
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode filesystem content store options: %w", err)
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("filesystem content store: path is required")
	}

	store, err := contentfs.NewFSContentStore(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem content store: %w", err)
	}
	return store, nil
}

func createS3ContentStore(ctx context.Context, options map[string]any) (content.Store, error) {
	type s3Options struct {
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		KeyPrefix       string `mapstructure:"key_prefix"`
		Endpoint        string `mapstructure:"endpoint"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
		MaxRetries      int    `mapstructure:"max_retries"`
	}

	var opts s3Options
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode S3 content store options: %w", err)
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("S3 content store: bucket is required")
	}
	if opts.Region == "" {
		return nil, fmt.Errorf("S3 content store: region is required")
	}

	configOptions := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(opts.Region),
	}

	// Custom endpoint enables MinIO and Localstack.
	if opts.Endpoint != "" {
		//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
		customResolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
				//nolint:staticcheck
				return aws.Endpoint{
					URL:               opts.Endpoint,
					HostnameImmutable: true,
					Source:            aws.EndpointSourceCustom,
				}, nil
			},
		)
		//nolint:staticcheck
		configOptions = append(configOptions, awsConfig.WithEndpointResolverWithOptions(customResolver))
	}

	// Static credentials if provided, otherwise the default chain.
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = 10
	}
	configOptions = append(configOptions, awsConfig.WithRetryer(func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxRetries
		})
	}))

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Path-style addressing for MinIO/Localstack compatibility.
		if opts.Endpoint != "" {
			o.UsePathStyle = true
		}
	})

	store, err := contents3.NewS3ContentStore(ctx, contents3.S3ContentStoreConfig{
		Client:    client,
		Bucket:    opts.Bucket,
		KeyPrefix: opts.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 content store: %w", err)
	}

	logger.Info("S3 content store initialized: bucket=%s, region=%s, prefix=%s",
		opts.Bucket, opts.Region, opts.KeyPrefix)

	return store, nil
}

// CreateSessionStore creates the session store selected by the
// configuration.
//
// Supported types:
//   - "memory": ephemeral sessions, lost on restart
//   - "badger": persistent sessions surviving restarts
func CreateSessionStore(ctx context.Context, cfg *SessionConfig) (session.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case "memory":
		return sessionmemory.NewMemorySessionStore(), nil
	case "badger":
		return createBadgerSessionStore(cfg)
	default:
		return nil, fmt.Errorf("unknown session store type: %q (supported: memory, badger)", cfg.Type)
	}
}

func createBadgerSessionStore(cfg *SessionConfig) (session.Store, error) {
	type badgerOptions struct {
		Path     string `mapstructure:"path"`
		InMemory bool   `mapstructure:"in_memory"`
	}

	var opts badgerOptions
	if err := mapstructure.Decode(cfg.Badger, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode badger session store options: %w", err)
	}
	if opts.Path == "" && !opts.InMemory {
		return nil, fmt.Errorf("badger session store: path is required")
	}

	store, err := sessionbadger.NewBadgerSessionStore(sessionbadger.Options{
		Path:     opts.Path,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create badger session store: %w", err)
	}
	return store, nil
}
