package ledger

import (
	"context"
	"fmt"
	"strconv"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
)

// SaleResult reports a completed marketplace purchase.
type SaleResult struct {
	ItemID uint64
	Seller domain.Identity
	Buyer  domain.Identity
	Price  int64
}

// ListForSale puts an item the requester holds on the marketplace at the
// given price. Listing an already-listed item updates its price.
func (l *Ledger) ListForSale(requester domain.Identity, itemID uint64, price int64) (domain.Equipment, error) {
	if err := l.begin(); err != nil {
		return domain.Equipment{}, err
	}
	defer l.end()

	item, err := l.held(requester, itemID)
	if err != nil {
		return domain.Equipment{}, err
	}
	if price <= 0 {
		return domain.Equipment{}, apperrors.WithMetadata(apperrors.CodeInvalidPrice,
			fmt.Sprintf("price %d must be positive", price),
			map[string]string{"Price": strconv.FormatInt(price, 10)})
	}

	item.ForSale = true
	item.Price = price
	return *item, nil
}

// Delist removes the requester's item from the marketplace. Delisting an item
// that was never listed is a no-op.
func (l *Ledger) Delist(requester domain.Identity, itemID uint64) (domain.Equipment, error) {
	if err := l.begin(); err != nil {
		return domain.Equipment{}, err
	}
	defer l.end()

	item, err := l.held(requester, itemID)
	if err != nil {
		return domain.Equipment{}, err
	}
	item.ForSale = false
	item.Price = 0
	return *item, nil
}

// Buy purchases a listed item. The sale price moves from buyer to seller
// through the currency service before ownership changes hands; a failed
// payment leaves listing and ownership untouched. The purchased item lands in
// the buyer's equipped set and leaves the seller's.
func (l *Ledger) Buy(ctx context.Context, buyer domain.Identity, itemID uint64) (SaleResult, error) {
	if err := l.begin(); err != nil {
		return SaleResult{}, err
	}
	defer l.end()

	item, ok := l.equipment[itemID]
	if !ok {
		return SaleResult{}, apperrors.WithMetadata(apperrors.CodeEquipmentNotFound,
			fmt.Sprintf("equipment %d was never minted", itemID),
			map[string]string{"ItemID": strconv.FormatUint(itemID, 10)})
	}
	if !item.ForSale {
		return SaleResult{}, apperrors.WithMetadata(apperrors.CodeNotForSale,
			fmt.Sprintf("equipment %d is not listed for sale", itemID),
			map[string]string{"ItemID": strconv.FormatUint(itemID, 10)})
	}
	buyerRecord, ok := l.players[buyer]
	if !ok {
		return SaleResult{}, apperrors.WithMetadata(apperrors.CodeNotRegistered,
			fmt.Sprintf("player %s is not registered", buyer),
			map[string]string{"Identity": string(buyer)})
	}
	seller := l.holders[itemID]
	if seller == buyer {
		return SaleResult{}, apperrors.WithMetadata(apperrors.CodeSelfTrade,
			fmt.Sprintf("player %s already holds equipment %d", buyer, itemID),
			map[string]string{"Identity": string(buyer), "ItemID": strconv.FormatUint(itemID, 10)})
	}

	price := item.Price
	balance, err := l.currency.BalanceOf(ctx, buyer)
	if err != nil {
		return SaleResult{}, apperrors.Wrap(apperrors.CodePaymentFailed,
			fmt.Sprintf("check balance of %s", buyer), err)
	}
	if balance < price {
		return SaleResult{}, apperrors.WithMetadata(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("balance %d is below the asking price %d", balance, price),
			map[string]string{
				"Balance": strconv.FormatInt(balance, 10),
				"Price":   strconv.FormatInt(price, 10),
			})
	}
	if err := l.currency.TransferFrom(ctx, buyer, seller, price); err != nil {
		return SaleResult{}, apperrors.Wrap(apperrors.CodePaymentFailed,
			fmt.Sprintf("collect payment from %s", buyer), err)
	}

	// Payment cleared; hand the item over and clear the listing.
	l.holders[itemID] = buyer
	if sellerRecord, ok := l.players[seller]; ok {
		sellerRecord.Unequip(itemID)
	}
	buyerRecord.Equip(itemID)
	item.ForSale = false
	item.Price = 0

	return SaleResult{ItemID: itemID, Seller: seller, Buyer: buyer, Price: price}, nil
}

// held resolves an item the requester must currently hold.
func (l *Ledger) held(requester domain.Identity, itemID uint64) (*domain.Equipment, error) {
	item, ok := l.equipment[itemID]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeEquipmentNotFound,
			fmt.Sprintf("equipment %d was never minted", itemID),
			map[string]string{"ItemID": strconv.FormatUint(itemID, 10)})
	}
	if l.holders[itemID] != requester {
		return nil, apperrors.WithMetadata(apperrors.CodeNotOwner,
			fmt.Sprintf("player %s does not hold equipment %d", requester, itemID),
			map[string]string{"Identity": string(requester), "ItemID": strconv.FormatUint(itemID, 10)})
	}
	return item, nil
}
