package schema

const ShoppingEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "greencart",
	"name": "shopping_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "action", "type": "string"},
		{"name": "product_id", "type": "int"},
		{"name": "quantity", "type": "int"},
		{"name": "category", "type": "string"},
		{"name": "search_term", "type": "string"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// A ShoppingEventV1 is the wire form of one storefront interaction.
// OccurredAt is unix milliseconds.
type ShoppingEventV1 struct {
	EventID    string `avro:"event_id"`
	Action     string `avro:"action"`
	ProductID  int    `avro:"product_id"`
	Quantity   int    `avro:"quantity"`
	Category   string `avro:"category"`
	SearchTerm string `avro:"search_term"`
	OccurredAt int64  `avro:"occurred_at"`
}
