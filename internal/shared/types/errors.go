package types

import "errors"

var (
	ErrNoProfilesFound    = errors.New("no AWS profiles found. Please configure AWS CLI first")
	ErrGraphqlApiNotFound = errors.New("the referenced AppSync GraphQL API does not exist")
	ErrPreflightFailed    = errors.New("preflight validation failed")
	ErrUnsupportedFormat  = errors.New("unsupported template format (expected json or yaml)")
)
