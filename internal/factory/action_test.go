package factory

import (
	"testing"

	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"github.com/stretchr/testify/assert"
)

func TestCreateMintAction(t *testing.T) {
	action := CreateMintAction(1, event.TokenMinted{
		Token: entity.Token{TokenId: 7, Owner: "0xalice", TokenUri: "Sample URI"},
	})

	assert.Equal(t, uint64(1), action.Seq)
	assert.Equal(t, uint64(7), action.TokenId)
	assert.Equal(t, entity.MintAction, action.Action)
	assert.Empty(t, action.From)
	assert.Equal(t, "0xalice", action.To)
	assert.Equal(t, "Sample URI", action.TokenUri)
}

func TestCreateSaleAction(t *testing.T) {
	action := CreateSaleAction(9, event.ItemBought{
		Listing: entity.Listing{ListingId: 2, TokenId: 7, Price: 100, Seller: "0xalice", Sold: true},
		Buyer:   "0xbob",
		Fee:     1,
	})

	assert.Equal(t, uint64(9), action.Seq)
	assert.Equal(t, uint64(2), action.ListingId)
	assert.Equal(t, entity.SaleAction, action.Action)
	assert.Equal(t, "0xalice", action.From)
	assert.Equal(t, "0xbob", action.To)
	assert.Equal(t, uint64(100), action.Price)
	assert.Equal(t, uint64(1), action.Fee)
}

func TestActionSlugsAreStable(t *testing.T) {
	a := CreateTransferAction(3, event.TokenTransferred{Token: entity.Token{TokenId: 7}})
	b := CreateTransferAction(3, event.TokenTransferred{Token: entity.Token{TokenId: 7}})

	assert.Equal(t, a.Slug(), b.Slug())
}
