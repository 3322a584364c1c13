package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kittyhub/kittyhub.go/common"
	"github.com/kittyhub/kittyhub.go/db/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

var bufPool sync.Pool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

func (svc *KittyhubService) StartRabbitMqPublisher(ctx context.Context) error {
	// It is recommended that, when possible, publishers and consumers
	// use separate connections so that consumers are isolated from potential
	// flow control messures that may be applied to publishing connections.
	// We therefore start a single publishing connection here instead of storing
	// one on the service object.
	var conn *amqp.Connection
	expontentialBackoff := backoff.NewExponentialBackOff()
	expontentialBackoff.MaxInterval = time.Second * 10
	expontentialBackoff.MaxElapsedTime = time.Minute
	err := backoff.Retry(func() error {
		var err error
		conn, err = amqp.Dial(svc.Config.RabbitMQUri)
		return err
	}, expontentialBackoff)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		// For the time being we simply declare a single exchange and start pushing to it.
		// Towards the future however this might become a more involved setup.
		svc.Config.RabbitMQEventExchange,
		// topic is a type of exchange that allows routing messages to different queue's bases on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchange's accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check wether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	svc.Logger.Infof("Starting rabbitmq publisher")

	events, err := svc.subscribeAllEvents()
	if err != nil {
		svc.Logger.Error(err)
	}
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context canceled")
		case event := <-events:
			svc.publishEvent(ctx, event, ch)
		}
	}
}

// subscribeAllEvents fans every event kind into a single channel.
func (svc *KittyhubService) subscribeAllEvents() (chan models.Event, error) {
	events := make(chan models.Event)
	for _, kind := range common.EventKinds {
		if _, err := svc.EventPubSub.Subscribe(kind, events); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (svc *KittyhubService) publishEvent(ctx context.Context, event models.Event, ch *amqp.Channel) {
	key := fmt.Sprintf("kitty.%s", event.Kind)

	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)
	err := json.NewEncoder(payload).Encode(event)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	err = ch.PublishWithContext(ctx,
		svc.Config.RabbitMQEventExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	svc.Logger.Debugf("Succesfully published event to rabbitmq kind:%s kitty_id:%v", event.Kind, event.KittyID)
}
