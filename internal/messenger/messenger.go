package messenger

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/dappmarket/marketplace-ledger/internal/config"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"github.com/nu7hatch/gouuid"
	"go.uber.org/zap"
)

type MessageService interface {
	SendMessage(item Item, body []byte) error
	OnOffered(msg interface{})
	OnBought(msg interface{})
}

type Messenger struct {
	sqsClient *sqs.SQS
}

type Item string

var (
	ItemOffered Item = "market.offered"
	ItemBought  Item = "market.bought"
)

func (i Item) group() string {
	return fmt.Sprintf("%s.%s", config.Get().Index, i)
}

func NewMessenger() MessageService {
	cfg := config.Get().Aws

	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	}))

	return &Messenger{sqsClient: sqs.New(sess)}
}

func (m Messenger) SendMessage(item Item, body []byte) error {
	msgId, err := uuid.NewV4()
	if err != nil {
		return err
	}

	_, err = m.sqsClient.SendMessage(&sqs.SendMessageInput{
		QueueUrl:    aws.String(config.Get().Aws.QueueUrl),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]*sqs.MessageAttributeValue{
			"Item": {
				DataType:    aws.String("String"),
				StringValue: aws.String(item.group()),
			},
			"MessageId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msgId.String()),
			},
		},
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("item", item.group())).Error("[Queue] Failed to publish message")
		return err
	}

	zap.L().With(zap.String("item", item.group()), zap.String("messageId", msgId.String())).Info("[Queue] Published message")

	return nil
}

func (m Messenger) OnOffered(msg interface{}) {
	m.publishRecord(ItemOffered, msg)
}

func (m Messenger) OnBought(msg interface{}) {
	m.publishRecord(ItemBought, msg)
}

func (m Messenger) publishRecord(item Item, msg interface{}) {
	rec, ok := msg.(event.Record)
	if !ok {
		return
	}

	body, err := json.Marshal(rec.Payload)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to marshal event")
		return
	}

	if err := m.SendMessage(item, body); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("seq", rec.Seq)).Error("[Queue] Failed to send event")
	}
}
