package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-otp-nosql/internal/config"
	"github.com/go-otp-nosql/internal/domain"
)

// SMSSender sends SMS messages via AWS SNS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type sender struct {
	client            publisher
	senderID          string
	originationNumber string
}

// NewSender builds an SNS sender. It fails with domain.ErrNotConfigured when no sender identity
// is set or no AWS credentials resolve, so callers can fall back to console delivery.
func NewSender(ctx context.Context, cfg *config.Config) (SMSSender, error) {
	if cfg.SMSSenderIdentity() == "" {
		return nil, fmt.Errorf("sns: no sender id or origination number: %w", domain.ErrNotConfigured)
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SNSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sns: load AWS config: %w", err)
	}
	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("sns: no credentials (%v): %w", err, domain.ErrNotConfigured)
	}

	var clientOpts []func(*sns.Options)
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return newSender(sns.NewFromConfig(awsCfg, clientOpts...), cfg.SNSSenderID, cfg.SNSOriginationNumber), nil
}

func newSender(client publisher, senderID, originationNumber string) *sender {
	return &sender{client: client, senderID: senderID, originationNumber: originationNumber}
}

// SendSMS publishes a transactional SMS. to must already be in E.164 form.
func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	attrs := map[string]snstypes.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": stringAttr("Transactional"),
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = stringAttr(s.senderID)
	}
	if s.originationNumber != "" {
		attrs["AWS.MM.SMS.OriginationNumber"] = stringAttr(s.originationNumber)
	}
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       &to,
		Message:           &message,
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

func stringAttr(v string) snstypes.MessageAttributeValue {
	return snstypes.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
}
