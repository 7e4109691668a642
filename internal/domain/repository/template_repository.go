package repository

import (
	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
)

// TemplateRepository synthesizes the CloudFormation equivalent of a stack.
type TemplateRepository interface {
	// Synthesize renders the stack as a CloudFormation template in the
	// given format ("json" or "yaml").
	Synthesize(stack *entity.WafStack, format string) ([]byte, error)
}
