package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	marketAccount = "0xmarket"
	feeAccount    = "0xfees"
	alice         = "0xalice"
	bob           = "0xbob"
	carol         = "0xcarol"
)

func newTestLedger(t *testing.T, feePercent uint64) *Ledger {
	t.Helper()

	l, err := New("DApp NFT", "DAPP", marketAccount, feeAccount, feePercent)
	require.NoError(t, err)

	return l
}

func TestNew_FeePercentOutOfRange(t *testing.T) {
	_, err := New("DApp NFT", "DAPP", marketAccount, feeAccount, 101)
	assert.ErrorIs(t, err, ErrInvalidFeePercent)

	_, err = New("DApp NFT", "DAPP", marketAccount, feeAccount, 150)
	assert.ErrorIs(t, err, ErrInvalidFeePercent)

	l, err := New("DApp NFT", "DAPP", marketAccount, feeAccount, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), l.FeePercent())
}

func TestMint(t *testing.T) {
	l := newTestLedger(t, 1)

	id, err := l.Mint(alice, "Sample URI")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, uint64(1), l.TokenCount())
	assert.Equal(t, uint64(1), l.TokenBalance(alice))

	uri, err := l.TokenURI(1)
	require.NoError(t, err)
	assert.Equal(t, "Sample URI", uri)

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
}

func TestMint_SequentialIds(t *testing.T) {
	l := newTestLedger(t, 1)

	for i := uint64(1); i <= 5; i++ {
		id, err := l.Mint(bob, "ipfs://QmToken")
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}

	assert.Equal(t, uint64(5), l.TokenCount())
	assert.Equal(t, uint64(5), l.TokenBalance(bob))
}

func TestMint_EmptyUri(t *testing.T) {
	l := newTestLedger(t, 1)

	_, err := l.Mint(alice, "")
	assert.ErrorIs(t, err, ErrInvalidUri)
	assert.Equal(t, uint64(0), l.TokenCount())
}

func TestOwnerOf_UnknownToken(t *testing.T) {
	l := newTestLedger(t, 1)

	_, err := l.OwnerOf(1)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = l.TokenURI(1)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTransferFrom_ByOwner(t *testing.T) {
	l := newTestLedger(t, 1)

	_, err := l.Mint(alice, "Sample URI")
	require.NoError(t, err)

	require.NoError(t, l.TransferFrom(alice, alice, bob, 1))

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
	assert.Equal(t, uint64(0), l.TokenBalance(alice))
	assert.Equal(t, uint64(1), l.TokenBalance(bob))
}

func TestTransferFrom_ByApprovedOperator(t *testing.T) {
	l := newTestLedger(t, 1)

	_, err := l.Mint(alice, "Sample URI")
	require.NoError(t, err)

	require.NoError(t, l.SetApprovalForAll(alice, carol, true))
	require.NoError(t, l.TransferFrom(carol, alice, bob, 1))

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
}

func TestTransferFrom_Unauthorized(t *testing.T) {
	l := newTestLedger(t, 1)

	_, err := l.Mint(alice, "Sample URI")
	require.NoError(t, err)

	err = l.TransferFrom(carol, alice, bob, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
}

func TestTransferFrom_WrongOwner(t *testing.T) {
	l := newTestLedger(t, 1)

	_, err := l.Mint(alice, "Sample URI")
	require.NoError(t, err)

	err = l.TransferFrom(bob, bob, carol, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTransferFrom_UnknownToken(t *testing.T) {
	l := newTestLedger(t, 1)

	err := l.TransferFrom(alice, alice, bob, 99)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSetApprovalForAll_Revoke(t *testing.T) {
	l := newTestLedger(t, 1)

	_, err := l.Mint(alice, "Sample URI")
	require.NoError(t, err)

	require.NoError(t, l.SetApprovalForAll(alice, carol, true))
	assert.True(t, l.IsApprovedForAll(alice, carol))

	require.NoError(t, l.SetApprovalForAll(alice, carol, false))
	assert.False(t, l.IsApprovedForAll(alice, carol))

	err = l.TransferFrom(carol, alice, bob, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCollectionIdentity(t *testing.T) {
	l := newTestLedger(t, 1)

	assert.Equal(t, "DApp NFT", l.Name())
	assert.Equal(t, "DAPP", l.Symbol())
	assert.Equal(t, feeAccount, l.FeeAccount())
	assert.Equal(t, uint64(1), l.FeePercent())
}
