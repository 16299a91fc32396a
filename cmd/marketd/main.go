package main

import (
	"fmt"
	"net/http"

	"github.com/dappmarket/marketplace-ledger/internal/config"
	"github.com/dappmarket/marketplace-ledger/internal/dic"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var container *dic.Container

func main() {
	config.Init("marketd")
	container, _ = dic.NewContainer()

	go health()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace Started")

	actionIndexer := container.GetActionIndexer()
	event.AddEventListener(event.TokenMintedEvent, actionIndexer.OnMinted)
	event.AddEventListener(event.TokenTransferredEvent, actionIndexer.OnTransferred)
	event.AddEventListener(event.ItemOfferedEvent, actionIndexer.OnOffered)
	event.AddEventListener(event.ItemBoughtEvent, actionIndexer.OnBought)

	event.AddEventListener(event.TokenMintedEvent, container.GetMetadataIndexer().TriggerMetadataRefresh)

	if config.Get().Aws.QueueUrl != "" {
		event.AddEventListener(event.ItemOfferedEvent, container.GetMessenger().OnOffered)
		event.AddEventListener(event.ItemBoughtEvent, container.GetMessenger().OnBought)
	}

	container.GetDaemon().Execute()
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
