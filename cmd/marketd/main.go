package main

import (
	"net/http"

	"github.com/tunego/nft-market/internal/config"
	"github.com/tunego/nft-market/internal/config/di"
	"github.com/tunego/nft-market/internal/event"
	"github.com/tunego/nft-market/internal/messenger"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to initialise container")
	}

	if len(config.Get().ElasticSearch.Hosts) != 0 {
		subscribeIndexer()
	}
	if config.Get().AmqpUri != "" {
		subscribePublisher()
	}

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Market Started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, container.GetApiServer().Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start market api")
	}
}

func subscribeIndexer() {
	container.GetElastic().InstallMappings()

	activityIndexer := container.GetActivityIndexer()
	event.AddEventListener(event.SaleOfferCreatedEvent, activityIndexer.TriggerListing)
	event.AddEventListener(event.SaleOfferRemovedEvent, activityIndexer.TriggerDelisting)
	event.AddEventListener(event.SaleOfferAcceptedEvent, activityIndexer.TriggerSale)
}

func subscribePublisher() {
	publisher := container.GetEventPublisher()
	event.AddEventListener(event.SaleOfferCreatedEvent, publisher.Publisher(messenger.SaleListing))
	event.AddEventListener(event.SaleOfferRemovedEvent, publisher.Publisher(messenger.SaleDelisting))
	event.AddEventListener(event.SaleOfferAcceptedEvent, publisher.Publisher(messenger.SaleCompleted))
	event.AddEventListener(event.MarketFeeChangedEvent, publisher.Publisher(messenger.MarketFee))
}
