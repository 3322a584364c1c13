package controllers

import (
	"net/http"
	"time"

	"github.com/kittyhub/kittyhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// EventsController : Event history controller struct
type EventsController struct {
	svc *service.KittyhubService
}

func NewEventsController(svc *service.KittyhubService) *EventsController {
	return &EventsController{svc: svc}
}

type Event struct {
	Kind           string    `json:"kind"`
	ActorID        int64     `json:"actor_id"`
	CounterpartyID int64     `json:"counterparty_id,omitempty"`
	KittyID        int64     `json:"kitty_id"`
	DNA            string    `json:"dna,omitempty"`
	Price          *int64    `json:"price,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type GetEventsResponseBody struct {
	Events []Event `json:"events"`
}

// Events : Registry events the caller took part in, oldest first
func (controller *EventsController) Events(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	events, err := controller.svc.EventsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}

	response := make([]Event, len(events))
	for i, event := range events {
		response[i] = Event{
			Kind:           event.Kind,
			ActorID:        event.ActorID,
			CounterpartyID: event.CounterpartyID,
			KittyID:        event.KittyID,
			DNA:            event.DNA,
			Price:          event.Price,
			CreatedAt:      event.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, &GetEventsResponseBody{Events: response})
}
