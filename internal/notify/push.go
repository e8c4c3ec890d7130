package notify

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// ErrSubscriptionGone reports that the push endpoint no longer exists and
// the stored subscription should be deleted.
var ErrSubscriptionGone = errors.New("push subscription gone")

type PushSender interface {
	SendNotification(ctx context.Context, endpoint string, payloadJSON string) error
}

type SNSPushSender struct {
	client *sns.Client
}

func NewSNSPushSender(ctx context.Context, region string) (*SNSPushSender, error) {
	cfg, err := sdkconfig.LoadDefaultConfig(ctx, sdkconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSPushSender{client: sns.NewFromConfig(cfg)}, nil
}

func (s *SNSPushSender) SendNotification(ctx context.Context, endpoint string, payloadJSON string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(endpoint),
		Message:   aws.String(payloadJSON),
	})
	if err != nil {
		var disabled *types.EndpointDisabledException
		var notFound *types.NotFoundException
		if errors.As(err, &disabled) || errors.As(err, &notFound) {
			return ErrSubscriptionGone
		}
		return err
	}
	return nil
}
