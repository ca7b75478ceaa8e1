package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/errs"
)

// SecretKeys are the env keys that may live in Parameter Store instead of
// the process environment.
var SecretKeys = []string{
	"JWT_SECRET",
	"SUPABASE_DB_PASSWORD",
	"RESEND_API_KEY",
	"TWILIO_AUTH_TOKEN",
	"STORAGE_SECRET_ACCESS_KEY",
}

type parameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveSecrets fills unset SecretKeys in env from SSM parameters named
// SSM_PARAMETER_PREFIX + key. It is a no-op when no prefix is configured.
func ResolveSecrets(ctx context.Context, env map[string]string) error {
	prefix := GetString(env, "SSM_PARAMETER_PREFIX", "")
	if prefix == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(GetString(env, "AWS_REGION", "us-east-1")))
	if err != nil {
		return errs.NewConfigError("aws", err)
	}
	return resolveSecrets(ctx, ssm.NewFromConfig(awsCfg), prefix, env)
}

func resolveSecrets(ctx context.Context, client parameterGetter, prefix string, env map[string]string) error {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	for _, key := range SecretKeys {
		if env[key] != "" {
			continue
		}
		name := prefix + key
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(name),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			var notFound *ssmtypes.ParameterNotFound
			if errors.As(err, &notFound) {
				log.Debug().Str("parameter", name).Msg("secret not in parameter store")
				continue
			}
			return fmt.Errorf("reading parameter %s: %w", name, err)
		}
		if out.Parameter != nil && out.Parameter.Value != nil {
			env[key] = aws.ToString(out.Parameter.Value)
			log.Info().Str("key", key).Msg("loaded secret from parameter store")
		}
	}
	return nil
}
