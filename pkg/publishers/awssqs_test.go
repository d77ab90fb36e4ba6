package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestAWSSQSSenderSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sender := &awsSQSSender{
		queueURL: "https://example.com/queue",
		client:   client,
		log:      logger.NopLogger{},
	}

	err := sender.Send(context.Background(), Event{
		ID:       "evt-1",
		JobID:    "btc-grades",
		Resource: "trader-grades",
		Record:   domain.Record{ID: "r1", Resource: "trader-grades", Symbol: "BTC"},
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["job_id"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "btc-grades" {
		t.Fatalf("job_id attribute missing or wrong: %#v", attr)
	}
	if sym := client.input.MessageAttributes["symbol"]; aws.ToString(sym.StringValue) != "BTC" {
		t.Fatalf("symbol attribute missing or wrong: %#v", sym)
	}
	if attr.DataType == nil || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if client.input.MessageBody == nil || !strings.Contains(aws.ToString(client.input.MessageBody), `"job_id":"btc-grades"`) {
		t.Fatalf("MessageBody missing job_id: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestAWSSQSSenderSendError(t *testing.T) {
	client := &fakeSQSClient{err: errors.New("boom")}
	sender := &awsSQSSender{
		queueURL: "https://example.com/queue",
		client:   client,
		log:      logger.NopLogger{},
	}

	err := sender.Send(context.Background(), Event{
		ID:       "evt-1",
		JobID:    "btc-grades",
		Resource: "trader-grades",
		Record:   domain.Record{ID: "r1", Resource: "trader-grades", Symbol: "BTC"},
	})
	if err == nil {
		t.Fatalf("expected error from Send")
	}
}
