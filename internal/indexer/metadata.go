package indexer

import (
	"github.com/dappmarket/marketplace-ledger/internal/elastic_search"
	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"github.com/dappmarket/marketplace-ledger/internal/metadata"
	"go.uber.org/zap"
)

// MetadataIndexer resolves the URI of freshly minted tokens and records the
// outcome as a tokenmetadata document.
type MetadataIndexer interface {
	TriggerMetadataRefresh(msg interface{})
	Refresh(token entity.Token) error
}

type metadataIndexer struct {
	elastic         elastic_search.Index
	metadataService metadata.Service
}

func NewMetadataIndexer(elastic elastic_search.Index, metadataService metadata.Service) MetadataIndexer {
	return metadataIndexer{elastic, metadataService}
}

func (i metadataIndexer) TriggerMetadataRefresh(msg interface{}) {
	rec, ok := msg.(event.Record)
	if !ok {
		return
	}

	minted, ok := rec.Payload.(event.TokenMinted)
	if !ok {
		return
	}

	if err := i.Refresh(minted.Token); err != nil {
		zap.L().With(
			zap.Uint64("tokenId", minted.Token.TokenId),
			zap.Error(err),
		).Warn("MetadataIndexer: Failed to refresh metadata")
	}
}

func (i metadataIndexer) Refresh(token entity.Token) error {
	doc := entity.TokenMetadata{
		TokenId:  token.TokenId,
		TokenUri: token.TokenUri,
		Status:   entity.MetadataPending,
	}
	i.elastic.AddIndexRequest(elastic_search.TokenMetadataIndex.Get(), doc, elastic_search.TokenMetadata)

	md, err := i.metadataService.GetMetadata(token)
	if err != nil {
		doc.Status = entity.MetadataFailure
		doc.Error = err.Error()
	} else {
		doc.Status = entity.MetadataSuccess
		doc.Data = md
	}

	// The slug is stable per token, so the outcome lands on the pending
	// document: folded into the buffered index request while it is still
	// cached, otherwise as an update of the stored document.
	i.elastic.AddUpdateRequest(elastic_search.TokenMetadataIndex.Get(), doc, elastic_search.TokenMetadata)
	i.elastic.Persist()

	return err
}
