package repository

import (
	"context"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
// Every Ensure/Delete operation is idempotent: creating something that
// already exists updates or skips it, deleting something already gone
// reports a skip instead of failing.
type AWSRepository interface {
	// Profile Operations
	GetAWSProfiles() []string
	GetCallerIdentity(ctx context.Context, profile, region string) (entity.CallerIdentity, error)

	// AppSync Operations
	GetGraphqlApi(ctx context.Context, profile, region, apiID string) (*entity.GraphqlApi, error)

	// CloudWatch Logs Operations
	EnsureLogGroup(ctx context.Context, profile, region string, group entity.LogGroup) (entity.ResourceAction, error)
	DeleteLogGroup(ctx context.Context, profile, region, name string) (entity.ResourceAction, error)
	LogGroupExists(ctx context.Context, profile, region, name string) (bool, error)

	// S3 Operations
	EnsureLogBucket(ctx context.Context, profile, region string, bucket entity.LogBucket) (entity.ResourceAction, error)
	DeleteLogBucket(ctx context.Context, profile, region, name string) (entity.ResourceAction, error)
	BucketExists(ctx context.Context, profile, region, name string) (bool, error)

	// WAF Operations
	FindWebACL(ctx context.Context, profile, region, name string) (*entity.WebACLRef, error)
	PutWebACL(ctx context.Context, profile, region string, acl entity.WebACL) (entity.WebACLRef, entity.ResourceAction, error)
	DeleteWebACL(ctx context.Context, profile, region string, ref entity.WebACLRef) (entity.ResourceAction, error)

	PutLoggingConfiguration(ctx context.Context, profile, region, webACLArn, destinationArn string, redactAuthorization bool) error
	DeleteLoggingConfiguration(ctx context.Context, profile, region, webACLArn string) (entity.ResourceAction, error)

	AssociateWebACL(ctx context.Context, profile, region, webACLArn, resourceArn string) error
	DisassociateWebACL(ctx context.Context, profile, region, resourceArn string) (entity.ResourceAction, error)
	GetWebACLForResource(ctx context.Context, profile, region, resourceArn string) (*entity.WebACLRef, error)
}
