package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	appsyncTypes "github.com/aws/aws-sdk-go-v2/service/appsync/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwlTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/wafv2"
	wafTypes "github.com/aws/aws-sdk-go-v2/service/wafv2/types"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
	"github.com/Mykematt/tmb12-waf-test/internal/domain/repository"
	"github.com/Mykematt/tmb12-waf-test/internal/shared/types"
)

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
func NewAWSRepository() repository.AWSRepository {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s-%s", profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "wafv2":
		client = wafv2.NewFromConfig(regionalCfg)
	case "logs":
		client = cloudwatchlogs.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	case "appsync":
		client = appsync.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// GetAWSProfiles lê os perfis configurados em ~/.aws.
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"default"}
	}

	credentialsPath := filepath.Join(homeDir, ".aws", "credentials")
	configPath := filepath.Join(homeDir, ".aws", "config")

	profiles := make(map[string]bool)
	profileRegex := regexp.MustCompile(`\[([^]]+)\]`)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		matches := profileRegex.FindAllStringSubmatch(string(content), -1)
		for _, match := range matches {
			profileName := match[1]
			if isConfig {
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	if len(profiles) == 0 {
		profiles["default"] = true
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

// GetCallerIdentity resolve a identidade (conta/ARN) do perfil ativo.
func (r *AWSRepositoryImpl) GetCallerIdentity(ctx context.Context, profile, region string) (entity.CallerIdentity, error) {
	client, err := r.getServiceClient(ctx, profile, region, "sts")
	if err != nil {
		return entity.CallerIdentity{}, err
	}
	stsClient := client.(*sts.Client)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return entity.CallerIdentity{}, fmt.Errorf("error resolving caller identity for profile %s: %w", profile, err)
	}
	return entity.CallerIdentity{
		AccountID: aws.ToString(result.Account),
		Arn:       aws.ToString(result.Arn),
		UserID:    aws.ToString(result.UserId),
	}, nil
}

// --- AppSync ---

// GetGraphqlApi busca a API GraphQL pelo ID. Retorna ErrGraphqlApiNotFound
// quando a API referenciada não existe.
func (r *AWSRepositoryImpl) GetGraphqlApi(ctx context.Context, profile, region, apiID string) (*entity.GraphqlApi, error) {
	client, err := r.getServiceClient(ctx, profile, region, "appsync")
	if err != nil {
		return nil, err
	}
	appsyncClient := client.(*appsync.Client)

	out, err := appsyncClient.GetGraphqlApi(ctx, &appsync.GetGraphqlApiInput{
		ApiId: aws.String(apiID),
	})
	if err != nil {
		var notFound *appsyncTypes.NotFoundException
		if errors.As(err, &notFound) {
			return nil, types.ErrGraphqlApiNotFound
		}
		return nil, fmt.Errorf("error describing GraphQL API %s: %w", apiID, err)
	}

	return &entity.GraphqlApi{
		ApiId: aws.ToString(out.GraphqlApi.ApiId),
		Name:  aws.ToString(out.GraphqlApi.Name),
		Arn:   aws.ToString(out.GraphqlApi.Arn),
	}, nil
}

// --- CloudWatch Logs ---

// EnsureLogGroup cria o log group (skip se já existe) e aplica a retenção.
func (r *AWSRepositoryImpl) EnsureLogGroup(ctx context.Context, profile, region string, group entity.LogGroup) (entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "logs")
	if err != nil {
		return entity.ActionFailed, err
	}
	logsClient := client.(*cloudwatchlogs.Client)

	action := entity.ActionCreated
	_, err = logsClient.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(group.Name),
	})
	if err != nil {
		var alreadyExists *cwlTypes.ResourceAlreadyExistsException
		if !errors.As(err, &alreadyExists) {
			return entity.ActionFailed, fmt.Errorf("error creating log group %s: %w", group.Name, err)
		}
		action = entity.ActionUpdated
	}

	// A retenção é reaplicada mesmo quando o grupo já existia, para que
	// mudanças de configuração convirjam no redeploy.
	_, err = logsClient.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    aws.String(group.Name),
		RetentionInDays: aws.Int32(int32(group.RetentionDays)),
	})
	if err != nil {
		return entity.ActionFailed, fmt.Errorf("error setting retention on log group %s: %w", group.Name, err)
	}

	return action, nil
}

// DeleteLogGroup remove o log group; skip quando já não existe.
func (r *AWSRepositoryImpl) DeleteLogGroup(ctx context.Context, profile, region, name string) (entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "logs")
	if err != nil {
		return entity.ActionFailed, err
	}
	logsClient := client.(*cloudwatchlogs.Client)

	_, err = logsClient.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		var notFound *cwlTypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return entity.ActionSkipped, nil
		}
		return entity.ActionFailed, fmt.Errorf("error deleting log group %s: %w", name, err)
	}
	return entity.ActionDeleted, nil
}

// LogGroupExists verifica a existência do log group sem criá-lo.
func (r *AWSRepositoryImpl) LogGroupExists(ctx context.Context, profile, region, name string) (bool, error) {
	client, err := r.getServiceClient(ctx, profile, region, "logs")
	if err != nil {
		return false, err
	}
	logsClient := client.(*cloudwatchlogs.Client)

	out, err := logsClient.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: aws.String(name),
	})
	if err != nil {
		return false, fmt.Errorf("error describing log group %s: %w", name, err)
	}
	for _, group := range out.LogGroups {
		if aws.ToString(group.LogGroupName) == name {
			return true, nil
		}
	}
	return false, nil
}

// --- S3 ---

// EnsureLogBucket cria o bucket de arquivamento (skip se já é nosso),
// bloqueia acesso público e aplica o lifecycle de transição/expiração.
func (r *AWSRepositoryImpl) EnsureLogBucket(ctx context.Context, profile, region string, bucket entity.LogBucket) (entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "s3")
	if err != nil {
		return entity.ActionFailed, err
	}
	s3Client := client.(*s3.Client)

	action := entity.ActionCreated
	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(bucket.Name),
	}
	// us-east-1 rejeita LocationConstraint explícito
	if region != "" && region != "us-east-1" {
		createInput.CreateBucketConfiguration = &s3Types.CreateBucketConfiguration{
			LocationConstraint: s3Types.BucketLocationConstraint(region),
		}
	}

	_, err = s3Client.CreateBucket(ctx, createInput)
	if err != nil {
		var ownedByYou *s3Types.BucketAlreadyOwnedByYou
		if !errors.As(err, &ownedByYou) {
			return entity.ActionFailed, fmt.Errorf("error creating bucket %s: %w", bucket.Name, err)
		}
		action = entity.ActionUpdated
	}

	_, err = s3Client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(bucket.Name),
		PublicAccessBlockConfiguration: &s3Types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			RestrictPublicBuckets: aws.Bool(true),
		},
	})
	if err != nil {
		return entity.ActionFailed, fmt.Errorf("error blocking public access on bucket %s: %w", bucket.Name, err)
	}

	_, err = s3Client.PutBucketLifecycleConfiguration(ctx, &s3.PutBucketLifecycleConfigurationInput{
		Bucket: aws.String(bucket.Name),
		LifecycleConfiguration: &s3Types.BucketLifecycleConfiguration{
			Rules: []s3Types.LifecycleRule{
				{
					ID:     aws.String("archive-waf-logs"),
					Status: s3Types.ExpirationStatusEnabled,
					Filter: &s3Types.LifecycleRuleFilter{
						Prefix: aws.String(""),
					},
					Transitions: []s3Types.Transition{
						{
							Days:         aws.Int32(int32(bucket.TransitionDays)),
							StorageClass: s3Types.TransitionStorageClassStandardIa,
						},
					},
					Expiration: &s3Types.LifecycleExpiration{
						Days: aws.Int32(int32(bucket.ExpirationDays)),
					},
				},
			},
		},
	})
	if err != nil {
		return entity.ActionFailed, fmt.Errorf("error setting lifecycle on bucket %s: %w", bucket.Name, err)
	}

	return action, nil
}

// DeleteLogBucket esvazia e remove o bucket; skip quando já não existe.
func (r *AWSRepositoryImpl) DeleteLogBucket(ctx context.Context, profile, region, name string) (entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "s3")
	if err != nil {
		return entity.ActionFailed, err
	}
	s3Client := client.(*s3.Client)

	// O bucket precisa estar vazio antes do DeleteBucket.
	paginator := s3.NewListObjectsV2Paginator(s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(name),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isNoSuchBucket(err) {
				return entity.ActionSkipped, nil
			}
			return entity.ActionFailed, fmt.Errorf("error listing objects in bucket %s: %w", name, err)
		}

		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]s3Types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, s3Types.ObjectIdentifier{Key: obj.Key})
		}

		_, err = s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(name),
			Delete: &s3Types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return entity.ActionFailed, fmt.Errorf("error emptying bucket %s: %w", name, err)
		}
	}

	_, err = s3Client.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		if isNoSuchBucket(err) {
			return entity.ActionSkipped, nil
		}
		return entity.ActionFailed, fmt.Errorf("error deleting bucket %s: %w", name, err)
	}
	return entity.ActionDeleted, nil
}

// BucketExists verifica a existência do bucket via HeadBucket.
func (r *AWSRepositoryImpl) BucketExists(ctx context.Context, profile, region, name string) (bool, error) {
	client, err := r.getServiceClient(ctx, profile, region, "s3")
	if err != nil {
		return false, err
	}
	s3Client := client.(*s3.Client)

	_, err = s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		if isNoSuchBucket(err) {
			return false, nil
		}
		return false, fmt.Errorf("error checking bucket %s: %w", name, err)
	}
	return true, nil
}

func isNoSuchBucket(err error) bool {
	var noSuchBucket *s3Types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}
	// HeadBucket/ListObjects em bucket inexistente pode voltar como 404 genérico
	var notFound *s3Types.NotFound
	return errors.As(err, &notFound)
}

// --- WAFv2 ---

// FindWebACL procura a Web ACL regional pelo nome. Retorna nil quando não
// existe (não é erro).
func (r *AWSRepositoryImpl) FindWebACL(ctx context.Context, profile, region, name string) (*entity.WebACLRef, error) {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return nil, err
	}
	wafClient := client.(*wafv2.Client)

	var marker *string
	for {
		out, err := wafClient.ListWebACLs(ctx, &wafv2.ListWebACLsInput{
			Scope:      wafTypes.ScopeRegional,
			NextMarker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("error listing web ACLs: %w", err)
		}

		for _, summary := range out.WebACLs {
			if aws.ToString(summary.Name) == name {
				return &entity.WebACLRef{
					Id:        aws.ToString(summary.Id),
					Name:      aws.ToString(summary.Name),
					Arn:       aws.ToString(summary.ARN),
					LockToken: aws.ToString(summary.LockToken),
				}, nil
			}
		}

		if out.NextMarker == nil || aws.ToString(out.NextMarker) == "" {
			return nil, nil
		}
		marker = out.NextMarker
	}
}

// PutWebACL cria a Web ACL ou, quando já existe, atualiza regras e
// configuração usando o lock token corrente.
func (r *AWSRepositoryImpl) PutWebACL(ctx context.Context, profile, region string, acl entity.WebACL) (entity.WebACLRef, entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return entity.WebACLRef{}, entity.ActionFailed, err
	}
	wafClient := client.(*wafv2.Client)

	existing, err := r.FindWebACL(ctx, profile, region, acl.Name)
	if err != nil {
		return entity.WebACLRef{}, entity.ActionFailed, err
	}

	rules := buildRules(acl.Rules)
	defaultAction := buildDefaultAction(acl.DefaultAction)
	visibility := &wafTypes.VisibilityConfig{
		CloudWatchMetricsEnabled: true,
		MetricName:               aws.String(acl.MetricName),
		SampledRequestsEnabled:   true,
	}

	if existing == nil {
		out, err := wafClient.CreateWebACL(ctx, &wafv2.CreateWebACLInput{
			Name:             aws.String(acl.Name),
			Scope:            wafTypes.ScopeRegional,
			Description:      aws.String(acl.Description),
			DefaultAction:    defaultAction,
			Rules:            rules,
			VisibilityConfig: visibility,
		})
		if err != nil {
			return entity.WebACLRef{}, entity.ActionFailed, fmt.Errorf("error creating web ACL %s: %w", acl.Name, err)
		}
		return entity.WebACLRef{
			Id:        aws.ToString(out.Summary.Id),
			Name:      aws.ToString(out.Summary.Name),
			Arn:       aws.ToString(out.Summary.ARN),
			LockToken: aws.ToString(out.Summary.LockToken),
		}, entity.ActionCreated, nil
	}

	_, err = wafClient.UpdateWebACL(ctx, &wafv2.UpdateWebACLInput{
		Id:               aws.String(existing.Id),
		Name:             aws.String(existing.Name),
		Scope:            wafTypes.ScopeRegional,
		LockToken:        aws.String(existing.LockToken),
		Description:      aws.String(acl.Description),
		DefaultAction:    defaultAction,
		Rules:            rules,
		VisibilityConfig: visibility,
	})
	if err != nil {
		return entity.WebACLRef{}, entity.ActionFailed, fmt.Errorf("error updating web ACL %s: %w", acl.Name, err)
	}
	return *existing, entity.ActionUpdated, nil
}

// DeleteWebACL remove a Web ACL; skip quando já não existe.
func (r *AWSRepositoryImpl) DeleteWebACL(ctx context.Context, profile, region string, ref entity.WebACLRef) (entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return entity.ActionFailed, err
	}
	wafClient := client.(*wafv2.Client)

	_, err = wafClient.DeleteWebACL(ctx, &wafv2.DeleteWebACLInput{
		Id:        aws.String(ref.Id),
		Name:      aws.String(ref.Name),
		Scope:     wafTypes.ScopeRegional,
		LockToken: aws.String(ref.LockToken),
	})
	if err != nil {
		var nonexistent *wafTypes.WAFNonexistentItemException
		if errors.As(err, &nonexistent) {
			return entity.ActionSkipped, nil
		}
		return entity.ActionFailed, fmt.Errorf("error deleting web ACL %s: %w", ref.Name, err)
	}
	return entity.ActionDeleted, nil
}

// PutLoggingConfiguration aponta os logs da Web ACL para o destino dado.
// O ARN de destino já deve vir normalizado (sem o sufixo :*).
func (r *AWSRepositoryImpl) PutLoggingConfiguration(ctx context.Context, profile, region, webACLArn, destinationArn string, redactAuthorization bool) error {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return err
	}
	wafClient := client.(*wafv2.Client)

	loggingConfig := &wafTypes.LoggingConfiguration{
		ResourceArn:           aws.String(webACLArn),
		LogDestinationConfigs: []string{destinationArn},
	}
	if redactAuthorization {
		loggingConfig.RedactedFields = []wafTypes.FieldToMatch{
			{
				SingleHeader: &wafTypes.SingleHeader{
					Name: aws.String("authorization"),
				},
			},
		}
	}

	_, err = wafClient.PutLoggingConfiguration(ctx, &wafv2.PutLoggingConfigurationInput{
		LoggingConfiguration: loggingConfig,
	})
	if err != nil {
		return fmt.Errorf("error enabling logging for web ACL: %w", err)
	}
	return nil
}

// DeleteLoggingConfiguration desliga o logging da Web ACL; skip quando
// não havia configuração.
func (r *AWSRepositoryImpl) DeleteLoggingConfiguration(ctx context.Context, profile, region, webACLArn string) (entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return entity.ActionFailed, err
	}
	wafClient := client.(*wafv2.Client)

	_, err = wafClient.DeleteLoggingConfiguration(ctx, &wafv2.DeleteLoggingConfigurationInput{
		ResourceArn: aws.String(webACLArn),
	})
	if err != nil {
		var nonexistent *wafTypes.WAFNonexistentItemException
		if errors.As(err, &nonexistent) {
			return entity.ActionSkipped, nil
		}
		return entity.ActionFailed, fmt.Errorf("error disabling logging: %w", err)
	}
	return entity.ActionDeleted, nil
}

// AssociateWebACL associa a Web ACL ao recurso (API AppSync).
func (r *AWSRepositoryImpl) AssociateWebACL(ctx context.Context, profile, region, webACLArn, resourceArn string) error {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return err
	}
	wafClient := client.(*wafv2.Client)

	_, err = wafClient.AssociateWebACL(ctx, &wafv2.AssociateWebACLInput{
		WebACLArn:   aws.String(webACLArn),
		ResourceArn: aws.String(resourceArn),
	})
	if err != nil {
		return fmt.Errorf("error associating web ACL with %s: %w", resourceArn, err)
	}
	return nil
}

// DisassociateWebACL desfaz a associação; skip quando não havia nenhuma.
func (r *AWSRepositoryImpl) DisassociateWebACL(ctx context.Context, profile, region, resourceArn string) (entity.ResourceAction, error) {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return entity.ActionFailed, err
	}
	wafClient := client.(*wafv2.Client)

	_, err = wafClient.DisassociateWebACL(ctx, &wafv2.DisassociateWebACLInput{
		ResourceArn: aws.String(resourceArn),
	})
	if err != nil {
		var nonexistent *wafTypes.WAFNonexistentItemException
		if errors.As(err, &nonexistent) {
			return entity.ActionSkipped, nil
		}
		return entity.ActionFailed, fmt.Errorf("error disassociating web ACL from %s: %w", resourceArn, err)
	}
	return entity.ActionDeleted, nil
}

// GetWebACLForResource retorna a Web ACL associada ao recurso, ou nil.
func (r *AWSRepositoryImpl) GetWebACLForResource(ctx context.Context, profile, region, resourceArn string) (*entity.WebACLRef, error) {
	client, err := r.getServiceClient(ctx, profile, region, "wafv2")
	if err != nil {
		return nil, err
	}
	wafClient := client.(*wafv2.Client)

	out, err := wafClient.GetWebACLForResource(ctx, &wafv2.GetWebACLForResourceInput{
		ResourceArn: aws.String(resourceArn),
	})
	if err != nil {
		var nonexistent *wafTypes.WAFNonexistentItemException
		if errors.As(err, &nonexistent) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up web ACL for %s: %w", resourceArn, err)
	}
	if out.WebACL == nil {
		return nil, nil
	}
	return &entity.WebACLRef{
		Id:   aws.ToString(out.WebACL.Id),
		Name: aws.ToString(out.WebACL.Name),
		Arn:  aws.ToString(out.WebACL.ARN),
	}, nil
}

// buildRules converte as regras do domínio para os tipos do SDK.
func buildRules(rules []entity.Rule) []wafTypes.Rule {
	out := make([]wafTypes.Rule, 0, len(rules))
	for _, rule := range rules {
		sdkRule := wafTypes.Rule{
			Name:     aws.String(rule.Name),
			Priority: rule.Priority,
			VisibilityConfig: &wafTypes.VisibilityConfig{
				CloudWatchMetricsEnabled: true,
				MetricName:               aws.String(rule.MetricName),
				SampledRequestsEnabled:   true,
			},
		}

		switch {
		case rule.ManagedRuleGroup != nil:
			sdkRule.Statement = &wafTypes.Statement{
				ManagedRuleGroupStatement: &wafTypes.ManagedRuleGroupStatement{
					VendorName: aws.String(rule.ManagedRuleGroup.VendorName),
					Name:       aws.String(rule.ManagedRuleGroup.Name),
				},
			}
			sdkRule.OverrideAction = &wafTypes.OverrideAction{None: &wafTypes.NoneAction{}}
		case rule.GeoMatch != nil:
			codes := make([]wafTypes.CountryCode, 0, len(rule.GeoMatch.CountryCodes))
			for _, cc := range rule.GeoMatch.CountryCodes {
				codes = append(codes, wafTypes.CountryCode(cc))
			}
			sdkRule.Statement = &wafTypes.Statement{
				GeoMatchStatement: &wafTypes.GeoMatchStatement{CountryCodes: codes},
			}
			sdkRule.Action = buildRuleAction(rule.Action)
		case rule.RateBased != nil:
			sdkRule.Statement = &wafTypes.Statement{
				RateBasedStatement: &wafTypes.RateBasedStatement{
					Limit:            aws.Int64(rule.RateBased.Limit),
					AggregateKeyType: wafTypes.RateBasedStatementAggregateKeyType(rule.RateBased.AggregateKeyType),
				},
			}
			sdkRule.Action = buildRuleAction(rule.Action)
		}

		out = append(out, sdkRule)
	}
	return out
}

func buildDefaultAction(action string) *wafTypes.DefaultAction {
	if action == entity.ActionBlock {
		return &wafTypes.DefaultAction{Block: &wafTypes.BlockAction{}}
	}
	return &wafTypes.DefaultAction{Allow: &wafTypes.AllowAction{}}
}

func buildRuleAction(action string) *wafTypes.RuleAction {
	if action == entity.ActionAllow {
		return &wafTypes.RuleAction{Allow: &wafTypes.AllowAction{}}
	}
	return &wafTypes.RuleAction{Block: &wafTypes.BlockAction{}}
}
