package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailMessage is the narrow contract with the email collaborator. Callers
// on non-critical paths treat send failures as best-effort: logged, never
// surfaced to the HTTP response.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type SESEmailSender struct {
	client *ses.Client
	from   string
}

func NewSESEmailSender(ctx context.Context, region, from string) (*SESEmailSender, error) {
	cfg, err := sdkconfig.LoadDefaultConfig(ctx, sdkconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESEmailSender{
		client: ses.NewFromConfig(cfg),
		from:   from,
	}, nil
}

func (s *SESEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(msg.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(msg.HTML),
				},
			},
		},
	})
	return err
}
