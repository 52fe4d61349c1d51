// services/channels.go
package services

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SendResult is the uniform outcome every provider is normalized into.
// Provider failures come back as Success=false, never as a panic.
type SendResult struct {
	Success           bool
	ProviderMessageID string
	Error             string
}

// ChannelSender is the uniform send contract over the three providers.
// Subject is ignored by the SMS and WhatsApp senders.
type ChannelSender interface {
	Send(ctx context.Context, recipient, subject, body string) SendResult
}

// ---- Twilio (SMS + WhatsApp) ----

type TwilioSMSSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSSender(client *twilio.RestClient, from string) *TwilioSMSSender {
	return &TwilioSMSSender{client: client, from: from}
}

func (s *TwilioSMSSender) Send(ctx context.Context, recipient, subject, body string) SendResult {
	return twilioCreateMessage(s.client, s.from, recipient, body)
}

// TwilioWhatsAppSender shares the SMS path; the whatsapp: prefix on both
// sides routes the message through Twilio's WhatsApp channel.
type TwilioWhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioWhatsAppSender(client *twilio.RestClient, from string) *TwilioWhatsAppSender {
	return &TwilioWhatsAppSender{client: client, from: from}
}

func (s *TwilioWhatsAppSender) Send(ctx context.Context, recipient, subject, body string) SendResult {
	return twilioCreateMessage(s.client, "whatsapp:"+s.from, "whatsapp:"+recipient, body)
}

func twilioCreateMessage(client *twilio.RestClient, from, to, body string) SendResult {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}

	result := SendResult{Success: true}
	if resp.Sid != nil {
		result.ProviderMessageID = *resp.Sid
	}
	return result
}

// NewTwilioClient builds the shared REST client from the environment.
func NewTwilioClient() *twilio.RestClient {
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTH_TOKEN"),
	})
}

// ---- Email via AWS SES v2 ----

// sesAPI is the slice of the SES client the sender needs; tests fake it.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESEmailSender struct {
	client sesAPI
	from   string
}

func NewSESEmailSender(ctx context.Context) (*SESEmailSender, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region := os.Getenv("AWS_REGION"); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &SESEmailSender{
		client: sesv2.NewFromConfig(awsCfg),
		from:   os.Getenv("SES_FROM_EMAIL"),
	}, nil
}

func (s *SESEmailSender) Send(ctx context.Context, recipient, subject, body string) SendResult {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		},
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}

	result := SendResult{Success: true}
	if out.MessageId != nil {
		result.ProviderMessageID = *out.MessageId
	}
	return result
}
