package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	"github.com/louisbranch/emberarena/internal/arena/economy"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
	"github.com/louisbranch/emberarena/internal/random"
)

const adminIdentity = domain.Identity("overseer")

func newTestLedger(t *testing.T, bank economy.CurrencyService) *Ledger {
	t.Helper()
	if bank == nil {
		bank = economy.NewMemoryBank()
	}
	return New(Config{
		Admin:    adminIdentity,
		Currency: bank,
		Bonuses:  random.FixedProvider{},
		Clock:    func() time.Time { return time.Unix(1700000000, 0) },
	})
}

// TestRegisterMintsStarterSword covers first registration: player id 1,
// level 1, zero experience, and a common sword minted, held, and equipped.
func TestRegisterMintsStarterSword(t *testing.T) {
	l := newTestLedger(t, nil)

	res, err := l.Register("alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if res.PlayerID != 1 {
		t.Errorf("PlayerID = %d, want 1", res.PlayerID)
	}
	if res.Starter.Category != domain.CategorySword || res.Starter.Rarity != domain.RarityCommon {
		t.Errorf("starter = %v %v, want common sword", res.Starter.Rarity, res.Starter.Category)
	}

	stats, err := l.PlayerStats("alice")
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	if stats.Level != 1 || stats.Experience != 0 {
		t.Errorf("level/experience = %d/%d, want 1/0", stats.Level, stats.Experience)
	}
	if len(stats.Equipped) != 1 || stats.Equipped[0] != res.Starter.ID {
		t.Errorf("Equipped = %v, want [%d]", stats.Equipped, res.Starter.ID)
	}

	_, holder, err := l.EquipmentDetails(res.Starter.ID)
	if err != nil {
		t.Fatalf("EquipmentDetails() error = %v", err)
	}
	if holder != "alice" {
		t.Errorf("holder = %s, want alice", holder)
	}
}

// TestRegisterTwiceFails verifies a second registration is rejected and the
// original record survives unchanged.
func TestRegisterTwiceFails(t *testing.T) {
	l := newTestLedger(t, nil)
	first, err := l.Register("alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := l.Register("alice"); !apperrors.IsCode(err, apperrors.CodeAlreadyRegistered) {
		t.Fatalf("second Register() error = %v, want %s", err, apperrors.CodeAlreadyRegistered)
	}

	stats, err := l.PlayerStats("alice")
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	if stats.PlayerID != first.PlayerID {
		t.Errorf("PlayerID = %d, want %d", stats.PlayerID, first.PlayerID)
	}
}

// TestMintForRequiresAdmin verifies only the designated administrator can
// mint equipment on demand.
func TestMintForRequiresAdmin(t *testing.T) {
	l := newTestLedger(t, nil)
	if _, err := l.Register("alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := l.MintFor("alice", "alice", domain.CategoryArmor, domain.RarityEpic); !apperrors.IsCode(err, apperrors.CodeUnauthorized) {
		t.Fatalf("MintFor() error = %v, want %s", err, apperrors.CodeUnauthorized)
	}

	item, err := l.MintFor(adminIdentity, "alice", domain.CategoryArmor, domain.RarityEpic)
	if err != nil {
		t.Fatalf("MintFor() error = %v", err)
	}
	if item.Attack != 30 || item.Defense != 30 {
		t.Errorf("epic stats = %d/%d, want 30/30", item.Attack, item.Defense)
	}
}

// TestMintForValidatesCategoryAndRarity rejects out-of-range enum values.
func TestMintForValidatesCategoryAndRarity(t *testing.T) {
	l := newTestLedger(t, nil)

	if _, err := l.MintFor(adminIdentity, "alice", domain.Category(99), domain.RarityCommon); !apperrors.IsCode(err, apperrors.CodeInvalidCategory) {
		t.Errorf("bad category error = %v, want %s", err, apperrors.CodeInvalidCategory)
	}
	if _, err := l.MintFor(adminIdentity, "alice", domain.CategorySword, domain.RarityUnspecified); !apperrors.IsCode(err, apperrors.CodeInvalidRarity) {
		t.Errorf("bad rarity error = %v, want %s", err, apperrors.CodeInvalidRarity)
	}
}

// TestItemIDsAreMonotonic verifies item ids strictly increase across mints
// and are never reused.
func TestItemIDsAreMonotonic(t *testing.T) {
	l := newTestLedger(t, nil)
	if _, err := l.Register("alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var last uint64
	for i := 0; i < 5; i++ {
		item, err := l.MintFor(adminIdentity, "alice", domain.CategoryShield, domain.RarityRare)
		if err != nil {
			t.Fatalf("MintFor() error = %v", err)
		}
		if item.ID <= last {
			t.Fatalf("item id %d not greater than previous %d", item.ID, last)
		}
		last = item.ID
	}
}

// TestBattleAwardsRewardAndExperience covers the full battle flow: one
// winner, one loser, experience awarded to both, and the reward transfer
// requested from the currency service.
func TestBattleAwardsRewardAndExperience(t *testing.T) {
	bank := economy.NewMemoryBank()
	l := newTestLedger(t, bank)
	for _, identity := range []domain.Identity{"alice", "bob"} {
		if _, err := l.Register(identity); err != nil {
			t.Fatalf("Register(%s) error = %v", identity, err)
		}
		if _, err := l.MintFor(adminIdentity, identity, domain.CategoryHelmet, domain.RarityEpic); err != nil {
			t.Fatalf("MintFor(%s) error = %v", identity, err)
		}
	}

	res, err := l.Battle(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if res.Winner == res.Loser {
		t.Fatalf("winner and loser are both %s", res.Winner)
	}
	if res.Reward != domain.BattleReward {
		t.Errorf("Reward = %d, want %d", res.Reward, domain.BattleReward)
	}

	winner, err := l.PlayerStats(res.Winner)
	if err != nil {
		t.Fatalf("PlayerStats(winner) error = %v", err)
	}
	loser, err := l.PlayerStats(res.Loser)
	if err != nil {
		t.Fatalf("PlayerStats(loser) error = %v", err)
	}
	if winner.Wins != 1 || winner.Losses != 0 {
		t.Errorf("winner record = %d-%d, want 1-0", winner.Wins, winner.Losses)
	}
	if loser.Wins != 0 || loser.Losses != 1 {
		t.Errorf("loser record = %d-%d, want 0-1", loser.Wins, loser.Losses)
	}
	if winner.Experience != domain.WinnerExperience {
		t.Errorf("winner experience = %d, want %d", winner.Experience, domain.WinnerExperience)
	}
	if loser.Experience != domain.LoserExperience {
		t.Errorf("loser experience = %d, want %d", loser.Experience, domain.LoserExperience)
	}

	balance, err := bank.BalanceOf(context.Background(), res.Winner)
	if err != nil {
		t.Fatalf("BalanceOf() error = %v", err)
	}
	if balance != domain.BattleReward {
		t.Errorf("winner balance = %d, want %d", balance, domain.BattleReward)
	}
}

// TestBattleTieGoesToChallenger pins the asymmetry: with equal power and a
// zero offset the challenger wins.
func TestBattleTieGoesToChallenger(t *testing.T) {
	l := newTestLedger(t, nil)
	for _, identity := range []domain.Identity{"alice", "bob"} {
		if _, err := l.Register(identity); err != nil {
			t.Fatalf("Register(%s) error = %v", identity, err)
		}
	}

	res, err := l.Battle(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if res.Winner != "alice" {
		t.Errorf("Winner = %s, want challenger alice", res.Winner)
	}
}

// TestBattleOffsetFlipsOutcome verifies the random offset boosts only the
// challenger and can overturn a raw power deficit.
func TestBattleOffsetFlipsOutcome(t *testing.T) {
	// Bob's extra level puts him 10 power ahead of alice.
	players := []domain.Player{
		{ID: 1, Identity: "alice", Level: 1, Active: true},
		{ID: 2, Identity: "bob", Level: 2, Active: true},
	}

	l := newTestLedger(t, nil)
	l.bonuses = random.FixedProvider{Offset: 0}
	if err := l.Load(players, nil); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	res, err := l.Battle(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if res.Winner != "bob" {
		t.Fatalf("Winner without offset = %s, want bob", res.Winner)
	}

	l = newTestLedger(t, nil)
	l.bonuses = random.FixedProvider{Offset: 19}
	if err := l.Load(players, nil); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	res, err = l.Battle(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if res.Winner != "alice" {
		t.Errorf("Winner with offset 19 = %s, want alice", res.Winner)
	}
	if res.Offset != 19 {
		t.Errorf("Offset = %d, want 19", res.Offset)
	}
}

// TestBattleValidation rejects self-battles and unknown participants.
func TestBattleValidation(t *testing.T) {
	l := newTestLedger(t, nil)
	if _, err := l.Register("alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := l.Battle(context.Background(), "alice", "alice"); !apperrors.IsCode(err, apperrors.CodeSelfBattle) {
		t.Errorf("self battle error = %v, want %s", err, apperrors.CodeSelfBattle)
	}
	if _, err := l.Battle(context.Background(), "alice", "ghost"); !apperrors.IsCode(err, apperrors.CodeNotRegistered) {
		t.Errorf("unknown opponent error = %v, want %s", err, apperrors.CodeNotRegistered)
	}
}

// TestBattleWinsMatchLosses verifies the aggregate invariant: across any
// battle sequence, total wins == total losses == completed battles.
func TestBattleWinsMatchLosses(t *testing.T) {
	l := newTestLedger(t, nil)
	identities := []domain.Identity{"alice", "bob", "carol"}
	for _, identity := range identities {
		if _, err := l.Register(identity); err != nil {
			t.Fatalf("Register(%s) error = %v", identity, err)
		}
	}

	battles := 0
	pairs := [][2]domain.Identity{{"alice", "bob"}, {"bob", "carol"}, {"carol", "alice"}, {"alice", "bob"}}
	for _, pair := range pairs {
		if _, err := l.Battle(context.Background(), pair[0], pair[1]); err != nil {
			t.Fatalf("Battle(%s, %s) error = %v", pair[0], pair[1], err)
		}
		battles++
	}

	wins, losses := 0, 0
	for _, identity := range identities {
		stats, err := l.PlayerStats(identity)
		if err != nil {
			t.Fatalf("PlayerStats(%s) error = %v", identity, err)
		}
		wins += stats.Wins
		losses += stats.Losses
	}
	if wins != battles || losses != battles {
		t.Errorf("wins/losses = %d/%d, want %d/%d", wins, losses, battles, battles)
	}
}

// failingBank rejects every transfer.
type failingBank struct{}

func (failingBank) BalanceOf(context.Context, domain.Identity) (int64, error) {
	return 0, errors.New("bank offline")
}

func (failingBank) Transfer(context.Context, domain.Identity, int64) error {
	return errors.New("bank offline")
}

func (failingBank) TransferFrom(context.Context, domain.Identity, domain.Identity, int64) error {
	return errors.New("bank offline")
}

// TestBattleRollsBackOnTransferFailure verifies a failed reward transfer
// leaves both player records untouched.
func TestBattleRollsBackOnTransferFailure(t *testing.T) {
	l := newTestLedger(t, failingBank{})
	for _, identity := range []domain.Identity{"alice", "bob"} {
		if _, err := l.Register(identity); err != nil {
			t.Fatalf("Register(%s) error = %v", identity, err)
		}
	}

	if _, err := l.Battle(context.Background(), "alice", "bob"); !apperrors.IsCode(err, apperrors.CodeRewardTransferFailed) {
		t.Fatalf("Battle() error = %v, want %s", err, apperrors.CodeRewardTransferFailed)
	}

	for _, identity := range []domain.Identity{"alice", "bob"} {
		stats, err := l.PlayerStats(identity)
		if err != nil {
			t.Fatalf("PlayerStats(%s) error = %v", identity, err)
		}
		if stats.Wins != 0 || stats.Losses != 0 || stats.Experience != 0 {
			t.Errorf("%s record mutated after failed transfer: %+v", identity, stats)
		}
	}
}

// reentrantBank calls back into the ledger mid-transfer, mimicking a hostile
// currency collaborator.
type reentrantBank struct {
	ledger *Ledger
	nested error
}

func (b *reentrantBank) BalanceOf(context.Context, domain.Identity) (int64, error) {
	return 1 << 30, nil
}

func (b *reentrantBank) Transfer(ctx context.Context, _ domain.Identity, _ int64) error {
	_, b.nested = b.ledger.Battle(ctx, "alice", "bob")
	return nil
}

func (b *reentrantBank) TransferFrom(ctx context.Context, _, _ domain.Identity, _ int64) error {
	_, b.nested = b.ledger.Battle(ctx, "alice", "bob")
	return nil
}

// TestReentrantCallRejected verifies a callback into the ledger during an
// in-flight operation is rejected while the outer operation still completes.
func TestReentrantCallRejected(t *testing.T) {
	bank := &reentrantBank{}
	l := newTestLedger(t, bank)
	bank.ledger = l
	for _, identity := range []domain.Identity{"alice", "bob"} {
		if _, err := l.Register(identity); err != nil {
			t.Fatalf("Register(%s) error = %v", identity, err)
		}
	}

	if _, err := l.Battle(context.Background(), "alice", "bob"); err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if !apperrors.IsCode(bank.nested, apperrors.CodeReentrantCall) {
		t.Fatalf("nested call error = %v, want %s", bank.nested, apperrors.CodeReentrantCall)
	}

	stats, err := l.PlayerStats("alice")
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	if stats.Wins+stats.Losses != 1 {
		t.Errorf("alice played %d battles, want 1", stats.Wins+stats.Losses)
	}
}

// TestListAndBuyTransfersOwnership covers the marketplace happy path:
// listing, purchase, payment, holder change, and listing cleanup.
func TestListAndBuyTransfersOwnership(t *testing.T) {
	bank := economy.NewMemoryBank()
	l := newTestLedger(t, bank)
	alice, err := l.Register("alice")
	if err != nil {
		t.Fatalf("Register(alice) error = %v", err)
	}
	if _, err := l.Register("bob"); err != nil {
		t.Fatalf("Register(bob) error = %v", err)
	}
	bank.Deposit("bob", 25)

	if _, err := l.ListForSale("alice", alice.Starter.ID, 10); err != nil {
		t.Fatalf("ListForSale() error = %v", err)
	}

	sale, err := l.Buy(context.Background(), "bob", alice.Starter.ID)
	if err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if sale.Seller != "alice" || sale.Buyer != "bob" || sale.Price != 10 {
		t.Errorf("sale = %+v, want alice->bob at 10", sale)
	}

	item, holder, err := l.EquipmentDetails(alice.Starter.ID)
	if err != nil {
		t.Fatalf("EquipmentDetails() error = %v", err)
	}
	if holder != "bob" {
		t.Errorf("holder = %s, want bob", holder)
	}
	if item.ForSale || item.Price != 0 {
		t.Errorf("listing not cleared: forSale=%v price=%d", item.ForSale, item.Price)
	}

	sellerBalance, _ := bank.BalanceOf(context.Background(), "alice")
	buyerBalance, _ := bank.BalanceOf(context.Background(), "bob")
	if sellerBalance != 10 || buyerBalance != 15 {
		t.Errorf("balances = %d/%d, want 10/15", sellerBalance, buyerBalance)
	}

	// The item moves between equipped sets too.
	aliceStats, _ := l.PlayerStats("alice")
	bobStats, _ := l.PlayerStats("bob")
	for _, id := range aliceStats.Equipped {
		if id == alice.Starter.ID {
			t.Errorf("seller still has item %d equipped", id)
		}
	}
	found := false
	for _, id := range bobStats.Equipped {
		if id == alice.Starter.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("buyer equipped set %v missing item %d", bobStats.Equipped, alice.Starter.ID)
	}
}

// TestBuyUnlistedFails verifies purchasing an unlisted item is rejected with
// no mutation.
func TestBuyUnlistedFails(t *testing.T) {
	bank := economy.NewMemoryBank()
	l := newTestLedger(t, bank)
	alice, err := l.Register("alice")
	if err != nil {
		t.Fatalf("Register(alice) error = %v", err)
	}
	if _, err := l.Register("bob"); err != nil {
		t.Fatalf("Register(bob) error = %v", err)
	}
	bank.Deposit("bob", 100)

	if _, err := l.Buy(context.Background(), "bob", alice.Starter.ID); !apperrors.IsCode(err, apperrors.CodeNotForSale) {
		t.Fatalf("Buy() error = %v, want %s", err, apperrors.CodeNotForSale)
	}

	_, holder, err := l.EquipmentDetails(alice.Starter.ID)
	if err != nil {
		t.Fatalf("EquipmentDetails() error = %v", err)
	}
	if holder != "alice" {
		t.Errorf("holder = %s, want alice", holder)
	}
	balance, _ := bank.BalanceOf(context.Background(), "bob")
	if balance != 100 {
		t.Errorf("buyer balance = %d, want 100", balance)
	}
}

// TestBuyRejections walks the remaining purchase failure modes.
func TestBuyRejections(t *testing.T) {
	bank := economy.NewMemoryBank()
	l := newTestLedger(t, bank)
	alice, err := l.Register("alice")
	if err != nil {
		t.Fatalf("Register(alice) error = %v", err)
	}
	if _, err := l.Register("bob"); err != nil {
		t.Fatalf("Register(bob) error = %v", err)
	}
	if _, err := l.ListForSale("alice", alice.Starter.ID, 50); err != nil {
		t.Fatalf("ListForSale() error = %v", err)
	}

	if _, err := l.Buy(context.Background(), "bob", 999); !apperrors.IsCode(err, apperrors.CodeEquipmentNotFound) {
		t.Errorf("unknown item error = %v, want %s", err, apperrors.CodeEquipmentNotFound)
	}
	if _, err := l.Buy(context.Background(), "ghost", alice.Starter.ID); !apperrors.IsCode(err, apperrors.CodeNotRegistered) {
		t.Errorf("unregistered buyer error = %v, want %s", err, apperrors.CodeNotRegistered)
	}
	if _, err := l.Buy(context.Background(), "alice", alice.Starter.ID); !apperrors.IsCode(err, apperrors.CodeSelfTrade) {
		t.Errorf("self trade error = %v, want %s", err, apperrors.CodeSelfTrade)
	}
	if _, err := l.Buy(context.Background(), "bob", alice.Starter.ID); !apperrors.IsCode(err, apperrors.CodeInsufficientFunds) {
		t.Errorf("broke buyer error = %v, want %s", err, apperrors.CodeInsufficientFunds)
	}

	item, holder, err := l.EquipmentDetails(alice.Starter.ID)
	if err != nil {
		t.Fatalf("EquipmentDetails() error = %v", err)
	}
	if holder != "alice" || !item.ForSale || item.Price != 50 {
		t.Errorf("listing mutated by failed purchases: holder=%s forSale=%v price=%d", holder, item.ForSale, item.Price)
	}
}

// TestListForSaleValidation rejects non-holders and non-positive prices.
func TestListForSaleValidation(t *testing.T) {
	l := newTestLedger(t, nil)
	alice, err := l.Register("alice")
	if err != nil {
		t.Fatalf("Register(alice) error = %v", err)
	}
	if _, err := l.Register("bob"); err != nil {
		t.Fatalf("Register(bob) error = %v", err)
	}

	if _, err := l.ListForSale("bob", alice.Starter.ID, 10); !apperrors.IsCode(err, apperrors.CodeNotOwner) {
		t.Errorf("non-holder error = %v, want %s", err, apperrors.CodeNotOwner)
	}
	if _, err := l.ListForSale("alice", alice.Starter.ID, 0); !apperrors.IsCode(err, apperrors.CodeInvalidPrice) {
		t.Errorf("zero price error = %v, want %s", err, apperrors.CodeInvalidPrice)
	}
	if _, err := l.ListForSale("alice", 999, 10); !apperrors.IsCode(err, apperrors.CodeEquipmentNotFound) {
		t.Errorf("unknown item error = %v, want %s", err, apperrors.CodeEquipmentNotFound)
	}
}

// TestDelistClearsListing verifies delisting resets both flag and price, and
// is a no-op on an unlisted item.
func TestDelistClearsListing(t *testing.T) {
	l := newTestLedger(t, nil)
	alice, err := l.Register("alice")
	if err != nil {
		t.Fatalf("Register(alice) error = %v", err)
	}
	if _, err := l.ListForSale("alice", alice.Starter.ID, 30); err != nil {
		t.Fatalf("ListForSale() error = %v", err)
	}

	item, err := l.Delist("alice", alice.Starter.ID)
	if err != nil {
		t.Fatalf("Delist() error = %v", err)
	}
	if item.ForSale || item.Price != 0 {
		t.Errorf("listing not cleared: forSale=%v price=%d", item.ForSale, item.Price)
	}

	if _, err := l.Delist("alice", alice.Starter.ID); err != nil {
		t.Errorf("Delist() on unlisted item error = %v", err)
	}
}

// TestExperienceCarriesOverSingleLevel drives a player to 150 experience
// across two awards and pins the single-step leveling: level 2 with 50
// carried over, never level 3.
func TestExperienceCarriesOverSingleLevel(t *testing.T) {
	l := newTestLedger(t, nil)
	for _, identity := range []domain.Identity{"alice", "bob"} {
		if _, err := l.Register(identity); err != nil {
			t.Fatalf("Register(%s) error = %v", identity, err)
		}
	}

	// Alice challenges (and wins on the tie rule) three times: 50+50+50
	// experience, crossing the 100 threshold once.
	for i := 0; i < 3; i++ {
		res, err := l.Battle(context.Background(), "alice", "bob")
		if err != nil {
			t.Fatalf("Battle() error = %v", err)
		}
		if res.Winner != "alice" {
			t.Fatalf("Winner = %s, want alice", res.Winner)
		}
	}

	stats, err := l.PlayerStats("alice")
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	if stats.Level != 2 || stats.Experience != 50 {
		t.Errorf("level/experience = %d/%d, want 2/50", stats.Level, stats.Experience)
	}
}

// TestPowerTracksEquipment verifies player power reflects equipped gear and
// level at read time.
func TestPowerTracksEquipment(t *testing.T) {
	l := newTestLedger(t, nil)
	if _, err := l.Register("alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stats, err := l.PlayerStats("alice")
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	// Base 50 + level 10 + starter sword 10/10.
	if stats.Power != 80 {
		t.Errorf("Power = %d, want 80", stats.Power)
	}

	if _, err := l.MintFor(adminIdentity, "alice", domain.CategoryBoots, domain.RarityLegendary); err != nil {
		t.Fatalf("MintFor() error = %v", err)
	}
	stats, err = l.PlayerStats("alice")
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	if stats.Power != 160 {
		t.Errorf("Power after legendary boots = %d, want 160", stats.Power)
	}
}

// TestLoadResumesSequences verifies a restored ledger continues id
// assignment past the persisted records.
func TestLoadResumesSequences(t *testing.T) {
	l := newTestLedger(t, nil)
	players := []domain.Player{{ID: 3, Identity: "carol", Level: 2, Active: true, Equipped: []uint64{7}}}
	items := []HeldItem{{Item: domain.Equipment{ID: 7, Category: domain.CategoryArmor, Rarity: domain.RarityRare, Attack: 25, Defense: 25, Durability: 100, ItemLevel: 1}, Holder: "carol"}}
	if err := l.Load(players, items); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	res, err := l.Register("dave")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if res.PlayerID != 4 {
		t.Errorf("PlayerID = %d, want 4", res.PlayerID)
	}
	if res.Starter.ID != 8 {
		t.Errorf("starter id = %d, want 8", res.Starter.ID)
	}

	stats, err := l.PlayerStats("carol")
	if err != nil {
		t.Fatalf("PlayerStats(carol) error = %v", err)
	}
	if stats.Level != 2 || stats.Power != 120 {
		t.Errorf("restored carol = level %d power %d, want level 2 power 120", stats.Level, stats.Power)
	}
}

// TestSnapshotOrdersByID verifies snapshots come back sorted and decoupled
// from live state.
func TestSnapshotOrdersByID(t *testing.T) {
	l := newTestLedger(t, nil)
	for _, identity := range []domain.Identity{"alice", "bob"} {
		if _, err := l.Register(identity); err != nil {
			t.Fatalf("Register(%s) error = %v", identity, err)
		}
	}

	players, items := l.Snapshot()
	if len(players) != 2 || len(items) != 2 {
		t.Fatalf("snapshot sizes = %d/%d, want 2/2", len(players), len(items))
	}
	if players[0].ID != 1 || players[1].ID != 2 {
		t.Errorf("player order = %d,%d, want 1,2", players[0].ID, players[1].ID)
	}
	if items[0].Item.ID != 1 || items[1].Item.ID != 2 {
		t.Errorf("item order = %d,%d, want 1,2", items[0].Item.ID, items[1].Item.ID)
	}

	players[0].Wins = 99
	stats, err := l.PlayerStats(players[0].Identity)
	if err != nil {
		t.Fatalf("PlayerStats() error = %v", err)
	}
	if stats.Wins != 0 {
		t.Errorf("snapshot mutation leaked into ledger: wins = %d", stats.Wins)
	}
}
