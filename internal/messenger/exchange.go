package messenger

import "github.com/streadway/amqp"

type exchange struct {
	Name        string
	Type        string
	Durable     bool
	AutoDeleted bool
	Internal    bool
	NoWait      bool
	Arguments   amqp.Table
}

var exchanges = map[string]exchange{
	"sale.listing": {
		Name:    "sale.listing",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
	"sale.delisting": {
		Name:    "sale.delisting",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
	"sale.completed": {
		Name:    "sale.completed",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
	"market.fee": {
		Name:    "market.fee",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
}
