package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

const SsmParameterEnvVar = "BOOST_SSM_PARAMETER"

type SsmApi interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SsmSource reads the key from an encrypted SSM parameter.
type SsmSource struct {
	ParameterName string
	Client        SsmApi
}

func (s SsmSource) Name() string {
	return "ssm:" + s.ParameterName
}

func (s SsmSource) Lookup(ctx context.Context) (string, error) {
	if s.ParameterName == "" {
		return "", ErrNotFound
	}

	client := s.Client
	if client == nil {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return "", fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		client = ssm.NewFromConfig(cfg)
	}

	result, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.ParameterName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to retrieve parameter '%s': %w", s.ParameterName, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil || *result.Parameter.Value == "" {
		return "", ErrNotFound
	}

	return *result.Parameter.Value, nil
}
