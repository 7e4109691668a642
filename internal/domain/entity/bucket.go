package entity

import "fmt"

// LogBucket é o bucket S3 de arquivamento dos logs do WAF, com lifecycle
// para STANDARD_IA e expiração.
type LogBucket struct {
	Name string `json:"name"`
	// TransitionDays is when objects move to STANDARD_IA. S3 enforces a
	// 30 day minimum for that storage class.
	TransitionDays int `json:"transition_days"`
	ExpirationDays int `json:"expiration_days"`
}

// NewLogBucket derives the archive bucket for an environment. Bucket names
// are global, so the account ID is baked in to avoid collisions across
// accounts deploying the same environment name.
func NewLogBucket(environment, accountID string, transitionDays, expirationDays int) LogBucket {
	name := fmt.Sprintf("%s-waf-logs-%s", stackPrefix, environment)
	if accountID != "" {
		name = fmt.Sprintf("%s-%s", name, accountID)
	}
	return LogBucket{
		Name:           name,
		TransitionDays: transitionDays,
		ExpirationDays: expirationDays,
	}
}

// Arn returns the bucket ARN.
func (b LogBucket) Arn() string {
	return fmt.Sprintf("arn:aws:s3:::%s", b.Name)
}
