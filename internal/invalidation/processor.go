package invalidation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/goccy/go-json"

	"ms-structured-data/internal/models"
	"ms-structured-data/internal/render"
	"ms-structured-data/internal/sqsutil"
)

// Processor drains the invalidation queue fed by the presale-boundary
// schedules and drops the cached payloads for the named events.
type Processor struct {
	sqsClient *sqs.Client
	renderer  *render.Renderer
	queueURL  string
}

// NewProcessor creates a new invalidation processor.
func NewProcessor(sqsClient *sqs.Client, renderer *render.Renderer, queueURL string) *Processor {
	return &Processor{
		sqsClient: sqsClient,
		renderer:  renderer,
		queueURL:  queueURL,
	}
}

// ProcessMessages long-polls the invalidation queue until the context is
// cancelled.
func (p *Processor) ProcessMessages(ctx context.Context) error {
	if p.queueURL == "" {
		log.Println("Invalidation queue URL not configured, skipping processor")
		return fmt.Errorf("invalidation queue URL not configured")
	}

	log.Printf("Starting to process invalidation messages from %s", p.queueURL)

	for {
		select {
		case <-ctx.Done():
			log.Println("Context cancelled, stopping invalidation processor")
			return ctx.Err()
		default:
		}

		rawMessages, err := sqsutil.ReceiveMessages(ctx, p.sqsClient, p.queueURL)
		if err != nil {
			log.Printf("Error receiving messages from invalidation SQS queue: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		if len(rawMessages) == 0 {
			continue // Long polling already waited.
		}

		log.Printf("Received %d messages from invalidation queue.", len(rawMessages))
		var messagesToDelete []types.DeleteMessageBatchRequestEntry

		for _, rawMessage := range rawMessages {
			var messageBody models.InvalidationMessage
			if err := json.Unmarshal([]byte(*rawMessage.Body), &messageBody); err != nil {
				log.Printf("Error unmarshalling message body, will delete malformed message: %v", err)
				messagesToDelete = append(messagesToDelete, types.DeleteMessageBatchRequestEntry{
					Id:            rawMessage.MessageId,
					ReceiptHandle: rawMessage.ReceiptHandle,
				})
				continue
			}

			if messageBody.EventID == "" {
				log.Printf("Invalidation message without an event id, deleting: %+v", messageBody)
				messagesToDelete = append(messagesToDelete, types.DeleteMessageBatchRequestEntry{
					Id:            rawMessage.MessageId,
					ReceiptHandle: rawMessage.ReceiptHandle,
				})
				continue
			}

			log.Printf("Invalidating cached payloads for event %s (reason: %s)", messageBody.EventID, messageBody.Reason)
			p.renderer.InvalidateAllLocales(ctx, messageBody.EventID)
			messagesToDelete = append(messagesToDelete, types.DeleteMessageBatchRequestEntry{
				Id:            rawMessage.MessageId,
				ReceiptHandle: rawMessage.ReceiptHandle,
			})
		}

		if len(messagesToDelete) > 0 {
			if err := sqsutil.DeleteMessageBatch(ctx, p.sqsClient, p.queueURL, messagesToDelete); err != nil {
				log.Printf("Error batch deleting messages: %v", err)
			}
		}
	}
}
