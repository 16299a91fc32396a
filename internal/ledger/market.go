package ledger

import (
	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"go.uber.org/zap"
)

// MakeItem lists a token for sale at a fixed price and takes custody of the
// token into the market account. The seller must own the token and must have
// approved the market account beforehand; otherwise nothing is committed.
func (l *Ledger) MakeItem(seller string, tokenId, price uint64) (uint64, error) {
	if seller == "" {
		return 0, ErrInvalidAccount
	}
	if price == 0 {
		return 0, ErrInvalidPrice
	}

	l.mu.Lock()

	token, ok := l.tokens[tokenId]
	if !ok {
		l.mu.Unlock()
		return 0, ErrTokenNotFound
	}
	if token.Owner != seller {
		l.mu.Unlock()
		return 0, ErrUnauthorized
	}
	if !l.approvals[seller][l.marketAccount] {
		l.mu.Unlock()
		return 0, ErrUnauthorized
	}

	l.itemCount++
	listing := entity.Listing{
		ListingId: l.itemCount,
		TokenId:   tokenId,
		Price:     price,
		Seller:    seller,
		Sold:      false,
	}
	l.listings[listing.ListingId] = &listing

	token.Owner = l.marketAccount

	escrow := l.append(event.TokenTransferredEvent, event.TokenTransferred{Token: *token, From: seller, To: l.marketAccount})
	offered := l.append(event.ItemOfferedEvent, event.ItemOffered{Listing: listing, Token: *token})
	l.mu.Unlock()

	zap.L().With(
		zap.Uint64("listingId", listing.ListingId),
		zap.Uint64("tokenId", tokenId),
		zap.Uint64("price", price),
		zap.String("seller", seller),
	).Info("Ledger: item offered")

	l.publish(escrow, offered)

	return listing.ListingId, nil
}

// PurchaseItem settles an active listing: the exact asking price is debited
// from the buyer, split between seller and fee account, the listing is
// marked sold and custody moves to the buyer. All of it commits or none of
// it does.
func (l *Ledger) PurchaseItem(buyer string, listingId, payment uint64) error {
	if buyer == "" {
		return ErrInvalidAccount
	}

	l.mu.Lock()

	listing, ok := l.listings[listingId]
	if !ok {
		l.mu.Unlock()
		return ErrListingNotFound
	}
	if listing.Sold {
		l.mu.Unlock()
		return ErrAlreadySold
	}
	if payment != listing.Price {
		l.mu.Unlock()
		return ErrPaymentMismatch
	}
	if l.balances[buyer] < listing.Price {
		l.mu.Unlock()
		return ErrInsufficientFunds
	}

	token := l.tokens[listing.TokenId]
	fee := SaleFee(listing.Price, l.feePercent)

	l.balances[buyer] -= listing.Price
	l.balances[listing.Seller] += listing.Price - fee
	l.balances[l.feeAccount] += fee

	listing.Sold = true
	token.Owner = buyer

	transfer := l.append(event.TokenTransferredEvent, event.TokenTransferred{Token: *token, From: l.marketAccount, To: buyer})
	bought := l.append(event.ItemBoughtEvent, event.ItemBought{Listing: *listing, Token: *token, Buyer: buyer, Fee: fee})
	l.mu.Unlock()

	zap.L().With(
		zap.Uint64("listingId", listingId),
		zap.Uint64("tokenId", listing.TokenId),
		zap.Uint64("price", listing.Price),
		zap.Uint64("fee", fee),
		zap.String("seller", listing.Seller),
		zap.String("buyer", buyer),
	).Info("Ledger: item bought")

	l.publish(transfer, bought)

	return nil
}

func (l *Ledger) Item(listingId uint64) (entity.Listing, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	listing, ok := l.listings[listingId]
	if !ok {
		return entity.Listing{}, ErrListingNotFound
	}

	return *listing, nil
}

func (l *Ledger) ItemCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.itemCount
}

// SaleFee is floor(price * feePercent / 100), computed in split form so the
// product cannot overflow near the top of the uint64 range.
func SaleFee(price, feePercent uint64) uint64 {
	return price/100*feePercent + price%100*feePercent/100
}
