package common

const (
	EventKindKittyCreated      = "kitty_created"
	EventKindKittyBred         = "kitty_bred"
	EventKindKittyTransferred  = "kitty_transferred"
	EventKindKittyPriceUpdated = "kitty_price_updated"
	EventKindKittySold         = "kitty_sold"

	AccountTypeCurrent  = "current"
	AccountTypeIncoming = "incoming"
)

// EventKinds lists every kind a sink has to subscribe to.
var EventKinds = []string{
	EventKindKittyCreated,
	EventKindKittyBred,
	EventKindKittyTransferred,
	EventKindKittyPriceUpdated,
	EventKindKittySold,
}
