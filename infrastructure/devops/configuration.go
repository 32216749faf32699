package devops

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type ParameterClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type ParameterStore struct {
	client ParameterClient
}

func NewParameterStore(client ParameterClient) *ParameterStore {
	return &ParameterStore{client: client}
}

// ConnectParameterStore builds a store from the default AWS credential chain.
func ConnectParameterStore(ctx context.Context) (*ParameterStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewParameterStore(ssm.NewFromConfig(cfg)), nil
}

// GetParameter returns the decrypted value of a parameter.
func (p *ParameterStore) GetParameter(ctx context.Context, name string) (string, error) {
	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s is empty", name)
	}
	return *out.Parameter.Value, nil
}

// LoadYAML decodes a YAML parameter into target. Fields absent from the
// document keep their current value.
func (p *ParameterStore) LoadYAML(ctx context.Context, name string, target any) error {
	body, err := p.GetParameter(ctx, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(body), target); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}
	return nil
}
