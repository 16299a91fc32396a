package indexer

import (
	"github.com/dappmarket/marketplace-ledger/internal/elastic_search"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"github.com/dappmarket/marketplace-ledger/internal/factory"
	"go.uber.org/zap"
)

// ActionIndexer projects committed ledger events into marketaction
// documents for external consumers. It only ever observes events after
// commit, so the projection can lag but never lead the ledger.
type ActionIndexer interface {
	OnMinted(msg interface{})
	OnTransferred(msg interface{})
	OnOffered(msg interface{})
	OnBought(msg interface{})
	Reindex(journal []event.Record) error
}

type actionIndexer struct {
	elastic elastic_search.Index
}

func NewActionIndexer(elastic elastic_search.Index) ActionIndexer {
	return actionIndexer{elastic}
}

func (i actionIndexer) OnMinted(msg interface{}) {
	rec, ok := msg.(event.Record)
	if !ok {
		return
	}
	i.indexRecord(rec)
	i.elastic.Persist()
}

func (i actionIndexer) OnTransferred(msg interface{}) {
	rec, ok := msg.(event.Record)
	if !ok {
		return
	}
	i.indexRecord(rec)
	i.elastic.Persist()
}

func (i actionIndexer) OnOffered(msg interface{}) {
	rec, ok := msg.(event.Record)
	if !ok {
		return
	}
	i.indexRecord(rec)
	i.elastic.Persist()
}

func (i actionIndexer) OnBought(msg interface{}) {
	rec, ok := msg.(event.Record)
	if !ok {
		return
	}
	i.indexRecord(rec)
	i.elastic.Persist()
}

// Reindex rebuilds the action projection from the full journal.
func (i actionIndexer) Reindex(journal []event.Record) error {
	zap.L().With(zap.Int("records", len(journal))).Info("ActionIndexer: Reindex")

	for _, rec := range journal {
		i.indexRecord(rec)
		i.elastic.BatchPersist()
	}
	i.elastic.Persist()

	return nil
}

func (i actionIndexer) indexRecord(rec event.Record) {
	switch payload := rec.Payload.(type) {
	case event.TokenMinted:
		i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateMintAction(rec.Seq, payload), elastic_search.TokenMint)
	case event.TokenTransferred:
		i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateTransferAction(rec.Seq, payload), elastic_search.TokenTransfer)
	case event.ItemOffered:
		i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateListingAction(rec.Seq, payload), elastic_search.MarketListing)
	case event.ItemBought:
		i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateSaleAction(rec.Seq, payload), elastic_search.MarketSale)
	default:
		zap.L().With(zap.String("type", string(rec.Type))).Warn("ActionIndexer: Unknown event payload")
	}
}
