package elastic_search

import (
	"testing"
	"time"

	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex() index {
	return index{cache: cache.New(time.Minute, time.Minute)}
}

func TestAddUpdateRequest_FoldsIntoBufferedIndex(t *testing.T) {
	i := newTestIndex()

	doc := entity.TokenMetadata{TokenId: 1, Status: entity.MetadataPending}
	i.AddIndexRequest("tokenmetadata", doc, TokenMetadata)

	doc.Status = entity.MetadataSuccess
	i.AddUpdateRequest("tokenmetadata", doc, TokenMetadata)

	// Same slug while the index request is still buffered: the update is
	// folded in so the bulk never updates a document that does not exist.
	requests := i.GetRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, IndexRequest, requests[0].Type)
	assert.Equal(t, entity.MetadataSuccess, requests[0].Entity.(entity.TokenMetadata).Status)
}

func TestAddUpdateRequest_PersistedDocument(t *testing.T) {
	i := newTestIndex()

	doc := entity.TokenMetadata{TokenId: 1, Status: entity.MetadataSuccess}
	i.AddUpdateRequest("tokenmetadata", doc, TokenMetadata)

	requests := i.GetRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, UpdateRequest, requests[0].Type)
}

func TestClearRequests(t *testing.T) {
	i := newTestIndex()

	i.AddIndexRequest("tokenmetadata", entity.TokenMetadata{TokenId: 1}, TokenMetadata)
	require.Len(t, i.GetRequests(), 1)

	i.ClearRequests()
	assert.Empty(t, i.GetRequests())
}
