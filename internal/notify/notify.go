// Package notify e-mails applicants through AWS SES.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/cuongbtq/job-board/internal/api/domain"
)

// SESAPI is the subset of the SES client used here
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Message is a plain-text e-mail
type Message struct {
	To      string
	Subject string
	Body    string
}

type SESSender struct {
	client SESAPI
	from   string
}

// NewSESSender loads the default AWS credential chain for region
func NewSESSender(ctx context.Context, region, from string) (*SESSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewSESSenderWithClient(ses.NewFromConfig(awsCfg), from), nil
}

func NewSESSenderWithClient(client SESAPI, from string) *SESSender {
	return &SESSender{client: client, from: from}
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		return fmt.Errorf("failed to send e-mail: %w", err)
	}
	return nil
}

var statusPhrases = map[domain.ApplicationStatus]string{
	domain.ApplicationStatusPending:  "has been received and is waiting for review",
	domain.ApplicationStatusAccepted: "has been accepted",
	domain.ApplicationStatusRejected: "was not successful this time",
	domain.ApplicationStatusOnHold:   "has been put on hold",
}

// StatusMessage composes the e-mail sent when an application changes status
func StatusMessage(to, applicantName, jobTitle string, status domain.ApplicationStatus, notes string) Message {
	phrase, ok := statusPhrases[status]
	if !ok {
		phrase = "is now " + string(status)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", applicantName)
	fmt.Fprintf(&body, "Your application for %s %s.\n", jobTitle, phrase)
	if notes != "" {
		fmt.Fprintf(&body, "\nNotes from the hiring team:\n%s\n", notes)
	}
	body.WriteString("\nThis message was sent automatically, please do not reply.\n")

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Application update: %s", jobTitle),
		Body:    body.String(),
	}
}
