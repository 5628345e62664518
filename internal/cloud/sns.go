package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient wraps AWS SNS client for notification operations
type SNSClient struct {
	svc      snsAPI
	topicArn string
}

// NewSNSClient creates a new SNS client instance
func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

// SendAlert sends an alert notification via SNS
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}

	log.Info().Str("message_id", aws.ToString(result.MessageId)).Msg("alert sent")
	return nil
}

// CriticalTml is one line of a severity alert.
type CriticalTml struct {
	CircuitID string
	TmlID     string
	StartRate *float64
	EndRate   float64
}

// SendCorrosionAlert lists TMLs whose end-of-window rate landed in the top
// severity band.
func (c *SNSClient) SendCorrosionAlert(ctx context.Context, start, end string, tmls []CriticalTml) error {
	if len(tmls) == 0 {
		return nil
	}
	return c.SendAlert(ctx, CorrosionAlertSubject(len(tmls)), CorrosionAlertMessage(start, end, tmls, time.Now().UTC()))
}

func CorrosionAlertSubject(n int) string {
	return fmt.Sprintf("Corrosion Alert: %d TMLs above 50 mpy", n)
}

func CorrosionAlertMessage(start, end string, tmls []CriticalTml, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Corrosion Tracking Alert\n\nWindow: %s to %s\n\n", start, end)
	for i, t := range tmls {
		from := "n/a"
		if t.StartRate != nil {
			from = fmt.Sprintf("%.2f", *t.StartRate)
		}
		fmt.Fprintf(&b, "%d. Circuit %s / TML %s: %s -> %.2f mpy\n", i+1, t.CircuitID, t.TmlID, from, t.EndRate)
	}
	fmt.Fprintf(&b, "\nGenerated: %s\n\nPlease schedule inspection.", at.Format(time.RFC3339))
	return b.String()
}
