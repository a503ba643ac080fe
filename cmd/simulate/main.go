// Package main provides a deterministic arena simulator: it registers a
// roster of players, mints a spread of equipment, runs seeded battles and
// marketplace trades, and prints the final standings.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/louisbranch/emberarena/internal/arena/app"
	"github.com/louisbranch/emberarena/internal/arena/domain"
	"github.com/louisbranch/emberarena/internal/arena/economy"
	"github.com/louisbranch/emberarena/internal/arena/storage"
	"github.com/louisbranch/emberarena/internal/platform/config"
	"github.com/louisbranch/emberarena/internal/random"
)

const simAdmin = domain.Identity("overseer")

var roster = []domain.Identity{
	"ember", "cinder", "ash", "flint", "spark", "forge",
}

func main() {
	var seedVal int64
	var players, battles, trades int
	var verbose bool

	flag.Int64Var(&seedVal, "seed", 0, "random seed for reproducibility (0 = random)")
	flag.IntVar(&players, "players", 4, "number of players to register (max 6)")
	flag.IntVar(&battles, "battles", 20, "number of battles to run")
	flag.IntVar(&trades, "trades", 3, "number of marketplace trades to attempt")
	flag.BoolVar(&verbose, "v", false, "log each battle and trade")
	flag.Parse()

	if players < 2 || players > len(roster) {
		config.Exitf("players must be between 2 and %d", len(roster))
	}
	if seedVal == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			config.Exitf("generate seed: %v", err)
		}
		seedVal = generated
	}

	if err := run(seedVal, players, battles, trades, verbose); err != nil {
		config.Exitf("simulate: %v", err)
	}
}

func run(seedVal int64, players, battles, trades int, verbose bool) error {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(seedVal))
	bank := economy.NewMemoryBank()
	store := storage.NewMemoryStore()

	arena, err := app.New(ctx, app.Config{
		Admin:    simAdmin,
		Currency: bank,
		Bonuses:  random.NewSeededProvider(seedVal),
		Store:    store,
	})
	if err != nil {
		return err
	}

	fmt.Printf("seed %d, %d players, %d battles, %d trades\n\n", seedVal, players, battles, trades)

	active := roster[:players]
	for _, identity := range active {
		if _, err := arena.Register(ctx, identity); err != nil {
			return fmt.Errorf("register %s: %w", identity, err)
		}
		bank.Deposit(identity, 100)
	}

	// Spread some gear so power levels diverge.
	categories := []domain.Category{domain.CategoryArmor, domain.CategoryShield, domain.CategoryHelmet, domain.CategoryBoots}
	rarities := []domain.Rarity{domain.RarityCommon, domain.RarityRare, domain.RarityEpic, domain.RarityLegendary}
	for _, identity := range active {
		item, err := arena.MintFor(ctx, simAdmin, identity,
			categories[rng.Intn(len(categories))], rarities[rng.Intn(len(rarities))])
		if err != nil {
			return fmt.Errorf("mint for %s: %w", identity, err)
		}
		if verbose {
			fmt.Printf("minted %s %s #%d for %s\n", item.Rarity, item.Category, item.ID, identity)
		}
	}

	for i := 0; i < battles; i++ {
		challenger := active[rng.Intn(len(active))]
		opponent := active[rng.Intn(len(active))]
		if challenger == opponent {
			continue
		}
		res, err := arena.Battle(ctx, challenger, opponent)
		if err != nil {
			return fmt.Errorf("battle %s vs %s: %w", challenger, opponent, err)
		}
		if verbose {
			fmt.Printf("battle: %s (power %d, offset %d) vs %s (power %d) -> %s\n",
				challenger, res.ChallengerPower, res.Offset, opponent, res.OpponentPower, res.Winner)
		}
	}

	for i := 0; i < trades; i++ {
		seller := active[rng.Intn(len(active))]
		buyer := active[rng.Intn(len(active))]
		if seller == buyer {
			continue
		}
		stats, err := arena.PlayerStats(ctx, seller)
		if err != nil {
			return err
		}
		if len(stats.Equipped) == 0 {
			continue
		}
		itemID := stats.Equipped[rng.Intn(len(stats.Equipped))]
		price := int64(rng.Intn(30) + 1)
		if _, err := arena.ListForSale(ctx, seller, itemID, price); err != nil {
			return fmt.Errorf("list item %d: %w", itemID, err)
		}
		if _, err := arena.Buy(ctx, buyer, itemID); err != nil {
			// Buyers can legitimately run out of funds; delist and move on.
			if verbose {
				fmt.Printf("trade failed for item %d: %v\n", itemID, err)
			}
			if _, err := arena.Delist(ctx, seller, itemID); err != nil {
				return fmt.Errorf("delist item %d: %w", itemID, err)
			}
			continue
		}
		if verbose {
			fmt.Printf("trade: item #%d %s -> %s for %d\n", itemID, seller, buyer, price)
		}
	}

	return printStandings(ctx, arena, bank, active)
}

func printStandings(ctx context.Context, arena *app.Arena, bank *economy.MemoryBank, active []domain.Identity) error {
	standings := make([]struct {
		identity domain.Identity
		level    int
		wins     int
		losses   int
		power    int
		balance  int64
	}, 0, len(active))

	for _, identity := range active {
		stats, err := arena.PlayerStats(ctx, identity)
		if err != nil {
			return err
		}
		balance, err := bank.BalanceOf(ctx, identity)
		if err != nil {
			return err
		}
		standings = append(standings, struct {
			identity domain.Identity
			level    int
			wins     int
			losses   int
			power    int
			balance  int64
		}{identity, stats.Level, stats.Wins, stats.Losses, stats.Power, balance})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].wins != standings[j].wins {
			return standings[i].wins > standings[j].wins
		}
		return standings[i].power > standings[j].power
	})

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tLEVEL\tRECORD\tPOWER\tBALANCE")
	for _, s := range standings {
		fmt.Fprintf(w, "%s\t%d\t%d-%d\t%d\t%d\n", s.identity, s.level, s.wins, s.losses, s.power, s.balance)
	}
	return w.Flush()
}
