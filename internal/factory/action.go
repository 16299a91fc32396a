package factory

import (
	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/dappmarket/marketplace-ledger/internal/event"
)

func CreateMintAction(seq uint64, minted event.TokenMinted) entity.MarketAction {
	return entity.MarketAction{
		Seq:      seq,
		TokenId:  minted.Token.TokenId,
		Action:   entity.MintAction,
		From:     "",
		To:       minted.Token.Owner,
		TokenUri: minted.Token.TokenUri,
	}
}

func CreateTransferAction(seq uint64, transferred event.TokenTransferred) entity.MarketAction {
	return entity.MarketAction{
		Seq:     seq,
		TokenId: transferred.Token.TokenId,
		Action:  entity.TransferAction,
		From:    transferred.From,
		To:      transferred.To,
	}
}

func CreateListingAction(seq uint64, offered event.ItemOffered) entity.MarketAction {
	return entity.MarketAction{
		Seq:       seq,
		TokenId:   offered.Listing.TokenId,
		ListingId: offered.Listing.ListingId,
		Action:    entity.ListingAction,
		From:      offered.Listing.Seller,
		Price:     offered.Listing.Price,
	}
}

func CreateSaleAction(seq uint64, bought event.ItemBought) entity.MarketAction {
	return entity.MarketAction{
		Seq:       seq,
		TokenId:   bought.Listing.TokenId,
		ListingId: bought.Listing.ListingId,
		Action:    entity.SaleAction,
		From:      bought.Listing.Seller,
		To:        bought.Buyer,
		Price:     bought.Listing.Price,
		Fee:       bought.Fee,
	}
}
