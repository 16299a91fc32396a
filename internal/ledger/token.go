package ledger

import (
	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/dappmarket/marketplace-ledger/internal/event"
	"go.uber.org/zap"
)

// Mint creates the next sequential token owned by the minter. Token ids
// start at 1 and are never reused.
func (l *Ledger) Mint(minter, uri string) (uint64, error) {
	if minter == "" {
		return 0, ErrInvalidAccount
	}
	if uri == "" {
		return 0, ErrInvalidUri
	}

	l.mu.Lock()
	l.tokenCount++
	token := entity.Token{
		TokenId:  l.tokenCount,
		Owner:    minter,
		TokenUri: uri,
		MintedBy: minter,
	}
	l.tokens[token.TokenId] = &token
	rec := l.append(event.TokenMintedEvent, event.TokenMinted{Token: token})
	l.mu.Unlock()

	zap.L().With(
		zap.Uint64("tokenId", token.TokenId),
		zap.String("owner", minter),
	).Info("Ledger: token minted")

	l.publish(rec)

	return token.TokenId, nil
}

func (l *Ledger) OwnerOf(tokenId uint64) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	token, ok := l.tokens[tokenId]
	if !ok {
		return "", ErrTokenNotFound
	}

	return token.Owner, nil
}

func (l *Ledger) TokenURI(tokenId uint64) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	token, ok := l.tokens[tokenId]
	if !ok {
		return "", ErrTokenNotFound
	}

	return token.TokenUri, nil
}

func (l *Ledger) Token(tokenId uint64) (entity.Token, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	token, ok := l.tokens[tokenId]
	if !ok {
		return entity.Token{}, ErrTokenNotFound
	}

	return *token, nil
}

func (l *Ledger) TokenCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.tokenCount
}

// TokenBalance returns the number of tokens currently owned by the account.
func (l *Ledger) TokenBalance(owner string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var count uint64
	for _, token := range l.tokens {
		if token.Owner == owner {
			count++
		}
	}

	return count
}

// SetApprovalForAll grants or revokes the operator's standing right to move
// any token the owner holds. Idempotent.
func (l *Ledger) SetApprovalForAll(owner, operator string, approved bool) error {
	if owner == "" || operator == "" {
		return ErrInvalidAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.approvals[owner] == nil {
		l.approvals[owner] = make(map[string]bool)
	}
	l.approvals[owner][operator] = approved

	return nil
}

func (l *Ledger) IsApprovedForAll(owner, operator string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.approvals[owner][operator]
}

// TransferFrom moves a token from its owner to another account. The caller
// must be the owner or hold the owner's standing approval.
func (l *Ledger) TransferFrom(caller, from, to string, tokenId uint64) error {
	if to == "" {
		return ErrInvalidAccount
	}

	l.mu.Lock()

	token, ok := l.tokens[tokenId]
	if !ok {
		l.mu.Unlock()
		return ErrTokenNotFound
	}
	if token.Owner != from {
		l.mu.Unlock()
		return ErrUnauthorized
	}
	if caller != from && !l.approvals[from][caller] {
		l.mu.Unlock()
		return ErrUnauthorized
	}

	token.Owner = to
	rec := l.append(event.TokenTransferredEvent, event.TokenTransferred{Token: *token, From: from, To: to})
	l.mu.Unlock()

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("from", from),
		zap.String("to", to),
	).Info("Ledger: token transferred")

	l.publish(rec)

	return nil
}
