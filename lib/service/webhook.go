package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/kittyhub/kittyhub.go/db/models"
)

func (svc *KittyhubService) StartWebhookSubscription(ctx context.Context) {

	svc.Logger.Infof("Starting webhook subscription with webhook url %s", svc.Config.WebhookUrl)
	events, err := svc.subscribeAllEvents()
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			svc.postToWebhook(event)
		}
	}
}

func (svc *KittyhubService) postToWebhook(event models.Event) {

	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(event)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(svc.Config.WebhookUrl, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
