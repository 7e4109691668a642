package entity

import (
	"fmt"
	"strings"
)

// LogGroup é o log group do CloudWatch que recebe os logs do WAF.
type LogGroup struct {
	Name          string `json:"name"`
	RetentionDays int    `json:"retention_days"`
}

// NewLogGroup derives the log group for an environment. The name carries
// the mandatory aws-waf-logs- prefix.
func NewLogGroup(environment string, retentionDays int) LogGroup {
	return LogGroup{
		Name:          fmt.Sprintf("%s%s-%s", LogGroupPrefix, stackPrefix, environment),
		RetentionDays: retentionDays,
	}
}

// Arn returns the log group ARN as the Logs API reports it, including the
// trailing :* that denotes "all streams".
func (g LogGroup) Arn(region, accountID string) string {
	return fmt.Sprintf("arn:aws:logs:%s:%s:log-group:%s:*", region, accountID, g.Name)
}

// DestinationArn returns the ARN to hand to PutLoggingConfiguration.
// WAF rejects destination ARNs carrying the :* suffix, so it is stripped.
func (g LogGroup) DestinationArn(region, accountID string) string {
	return NormalizeLogDestinationArn(g.Arn(region, accountID))
}

// NormalizeLogDestinationArn strips the trailing :* wildcard from a
// CloudWatch Logs log group ARN.
func NormalizeLogDestinationArn(arn string) string {
	return strings.TrimSuffix(arn, ":*")
}
