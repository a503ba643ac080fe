// Package main provides the arena operator CLI: one subcommand per ledger
// operation against the sqlite-backed arena.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/emberarena/internal/arena/admin"
	"github.com/louisbranch/emberarena/internal/arena/app"
	"github.com/louisbranch/emberarena/internal/arena/domain"
	"github.com/louisbranch/emberarena/internal/arena/economy"
	"github.com/louisbranch/emberarena/internal/arena/observability/audit"
	"github.com/louisbranch/emberarena/internal/arena/storage/sqlite"
	"github.com/louisbranch/emberarena/internal/platform/config"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
	"github.com/louisbranch/emberarena/internal/platform/otel"
)

type envConfig struct {
	DBPath          string `env:"EMBERARENA_DB_PATH" envDefault:"data/emberarena.db"`
	Admin           string `env:"EMBERARENA_ADMIN" envDefault:"overseer"`
	Locale          string `env:"EMBERARENA_LOCALE" envDefault:"en-US"`
	StartingBalance int64  `env:"EMBERARENA_STARTING_BALANCE" envDefault:"100"`
}

const usage = `usage: arena <command> [flags]

commands:
  register  enroll a new player and mint their starter sword
  battle    resolve a battle between two players
  mint      mint equipment for a player (admin grant required)
  list      put an item up for sale
  delist    remove an item from sale
  buy       purchase a listed item
  stats     show a player's record and power
  details   show an item's stats and holder
  audit     show recent audit events
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cfg envConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse config: %v", err)
	}

	ctx := context.Background()
	shutdown, err := otel.Setup(ctx, "emberarena")
	if err != nil {
		config.Exitf("setup telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			config.Exitf("create storage dir: %v", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		config.Exitf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close store: %v\n", err)
		}
	}()

	// The CLI ships a demo bank: every identity named on the command line is
	// funded with the starting balance before the operation runs.
	bank := economy.NewMemoryBank()

	arena, err := app.New(ctx, app.Config{
		Admin:    domain.Identity(cfg.Admin),
		Currency: bank,
		Store:    store,
	})
	if err != nil {
		config.Exitf("start arena: %v", err)
	}

	cli := &cli{cfg: cfg, arena: arena, bank: bank}
	if err := cli.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.message(err))
		os.Exit(1)
	}
}

type cli struct {
	cfg   envConfig
	arena *app.Arena
	bank  *economy.MemoryBank
}

// message localizes application errors for terminal output.
func (c *cli) message(err error) string {
	return apperrors.Localize(err, c.cfg.Locale)
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.register(ctx, args)
	case "battle":
		return c.battle(ctx, args)
	case "mint":
		return c.mint(ctx, args)
	case "list":
		return c.list(ctx, args)
	case "delist":
		return c.delist(ctx, args)
	case "buy":
		return c.buy(ctx, args)
	case "stats":
		return c.stats(ctx, args)
	case "details":
		return c.details(ctx, args)
	case "audit":
		return c.audit(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) fund(identities ...string) {
	for _, identity := range identities {
		c.bank.Deposit(domain.Identity(identity), c.cfg.StartingBalance)
	}
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	identity := fs.String("identity", "", "player identity to enroll")
	_ = fs.Parse(args)
	if *identity == "" {
		return fmt.Errorf("-identity is required")
	}

	res, err := c.arena.Register(ctx, domain.Identity(*identity))
	if err != nil {
		return err
	}
	fmt.Printf("registered %s as player #%d\n", *identity, res.PlayerID)
	fmt.Printf("starter %s %s #%d (attack %d, defense %d)\n",
		res.Starter.Rarity, res.Starter.Category, res.Starter.ID,
		res.Starter.Attack, res.Starter.Defense)
	return nil
}

func (c *cli) battle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("battle", flag.ExitOnError)
	challenger := fs.String("challenger", "", "challenging player identity")
	opponent := fs.String("opponent", "", "opposing player identity")
	_ = fs.Parse(args)
	if *challenger == "" || *opponent == "" {
		return fmt.Errorf("-challenger and -opponent are required")
	}

	res, err := c.arena.Battle(ctx, domain.Identity(*challenger), domain.Identity(*opponent))
	if err != nil {
		return err
	}
	fmt.Printf("%s (power %d, offset %d) vs %s (power %d): %s wins, reward %d\n",
		*challenger, res.ChallengerPower, res.Offset,
		*opponent, res.OpponentPower, res.Winner, res.Reward)
	return nil
}

func (c *cli) mint(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	owner := fs.String("owner", "", "identity receiving the item")
	category := fs.String("category", "", "equipment category (Sword, Armor, Shield, Helmet, Boots)")
	rarity := fs.String("rarity", "", "equipment rarity (Common, Rare, Epic, Legendary)")
	grant := fs.String("grant", "", "signed mint grant; falls back to the configured admin identity when empty")
	_ = fs.Parse(args)
	if *owner == "" || *category == "" || *rarity == "" {
		return fmt.Errorf("-owner, -category, and -rarity are required")
	}

	cat := domain.ParseCategory(*category)
	rar := domain.ParseRarity(*rarity)

	requester := domain.Identity(c.cfg.Admin)
	if strings.TrimSpace(*grant) != "" {
		grantCfg, err := admin.LoadMintGrantConfigFromEnv(nil)
		if err != nil {
			return err
		}
		claims, err := admin.ValidateMintGrant(*grant, admin.MintGrantExpectation{
			Owner:    *owner,
			Category: cat.String(),
			Rarity:   rar.String(),
		}, grantCfg)
		if err != nil {
			return err
		}
		requester = domain.Identity(claims.Subject)
	}

	item, err := c.arena.MintFor(ctx, requester, domain.Identity(*owner), cat, rar)
	if err != nil {
		return err
	}
	fmt.Printf("minted %s %s #%d for %s (attack %d, defense %d)\n",
		item.Rarity, item.Category, item.ID, *owner, item.Attack, item.Defense)
	fmt.Printf("mint cost (reference, not charged): %d\n", domain.MintCost)
	return nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	identity := fs.String("identity", "", "selling player identity")
	item := fs.Uint64("item", 0, "item id to list")
	price := fs.Int64("price", 0, "asking price")
	_ = fs.Parse(args)
	if *identity == "" || *item == 0 {
		return fmt.Errorf("-identity and -item are required")
	}

	listed, err := c.arena.ListForSale(ctx, domain.Identity(*identity), *item, *price)
	if err != nil {
		return err
	}
	fmt.Printf("item #%d listed at %d\n", listed.ID, listed.Price)
	return nil
}

func (c *cli) delist(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delist", flag.ExitOnError)
	identity := fs.String("identity", "", "selling player identity")
	item := fs.Uint64("item", 0, "item id to delist")
	_ = fs.Parse(args)
	if *identity == "" || *item == 0 {
		return fmt.Errorf("-identity and -item are required")
	}

	delisted, err := c.arena.Delist(ctx, domain.Identity(*identity), *item)
	if err != nil {
		return err
	}
	fmt.Printf("item #%d removed from sale\n", delisted.ID)
	return nil
}

func (c *cli) buy(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buy", flag.ExitOnError)
	identity := fs.String("identity", "", "buying player identity")
	item := fs.Uint64("item", 0, "item id to purchase")
	_ = fs.Parse(args)
	if *identity == "" || *item == 0 {
		return fmt.Errorf("-identity and -item are required")
	}

	c.fund(*identity)
	sale, err := c.arena.Buy(ctx, domain.Identity(*identity), *item)
	if err != nil {
		return err
	}
	fmt.Printf("item #%d sold by %s to %s for %d\n", sale.ItemID, sale.Seller, sale.Buyer, sale.Price)
	return nil
}

func (c *cli) stats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	identity := fs.String("identity", "", "player identity")
	_ = fs.Parse(args)
	if *identity == "" {
		return fmt.Errorf("-identity is required")
	}

	stats, err := c.arena.PlayerStats(ctx, domain.Identity(*identity))
	if err != nil {
		return err
	}
	fmt.Printf("player #%d %s\n", stats.PlayerID, stats.Identity)
	fmt.Printf("  level %d, experience %d\n", stats.Level, stats.Experience)
	fmt.Printf("  record %d-%d, power %d\n", stats.Wins, stats.Losses, stats.Power)
	fmt.Printf("  equipped: %v\n", stats.Equipped)
	return nil
}

func (c *cli) details(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("details", flag.ExitOnError)
	item := fs.Uint64("item", 0, "item id")
	_ = fs.Parse(args)
	if *item == 0 {
		return fmt.Errorf("-item is required")
	}

	details, holder, err := c.arena.EquipmentDetails(ctx, *item)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s #%d held by %s\n", details.Rarity, details.Category, details.ID, holder)
	fmt.Printf("  attack %d, defense %d, durability %d, level %d\n",
		details.Attack, details.Defense, details.Durability, details.ItemLevel)
	if details.ForSale {
		fmt.Printf("  for sale at %d\n", details.Price)
	}
	return nil
}

func (c *cli) audit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	limit := fs.Int("limit", 20, "max events to show (0 = all)")
	_ = fs.Parse(args)

	events, err := c.arena.AuditTrail(ctx, *limit)
	if err != nil {
		return err
	}
	for _, evt := range events {
		fmt.Printf("%s  %s  %s\n", evt.CreatedAt.Format(time.RFC3339), evt.EventName, audit.Describe(evt))
	}
	return nil
}
