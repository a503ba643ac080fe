package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeAlreadyRegistered    = "ALREADY_REGISTERED"
	CodeNotRegistered        = "NOT_REGISTERED"
	CodePlayerInactive       = "PLAYER_INACTIVE"
	CodeSelfBattle           = "SELF_BATTLE"
	CodeEquipmentNotFound    = "EQUIPMENT_NOT_FOUND"
	CodeNotOwner             = "NOT_OWNER"
	CodeInvalidCategory      = "INVALID_CATEGORY"
	CodeInvalidRarity        = "INVALID_RARITY"
	CodeInvalidPrice         = "INVALID_PRICE"
	CodeNotForSale           = "NOT_FOR_SALE"
	CodeSelfTrade            = "SELF_TRADE"
	CodeInsufficientFunds    = "INSUFFICIENT_FUNDS"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeGrantInvalid         = "GRANT_INVALID"
	CodeGrantExpired         = "GRANT_EXPIRED"
	CodeReentrantCall        = "REENTRANT_CALL"
	CodeRewardTransferFailed = "REWARD_TRANSFER_FAILED"
	CodePaymentFailed        = "PAYMENT_FAILED"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Player errors
		CodeAlreadyRegistered: "This identity is already registered",
		CodeNotRegistered:     "Player {{.Identity}} is not registered",
		CodePlayerInactive:    "Player {{.Identity}} is inactive",
		CodeSelfBattle:        "A player cannot battle themselves",

		// Equipment errors
		CodeEquipmentNotFound: "Equipment {{.ItemID}} was never minted",
		CodeNotOwner:          "Equipment {{.ItemID}} is not held by the requester",
		CodeInvalidCategory:   "Invalid equipment category specified",
		CodeInvalidRarity:     "Invalid rarity tier specified",

		// Marketplace errors
		CodeInvalidPrice:      "Listing price must be greater than zero",
		CodeNotForSale:        "Equipment {{.ItemID}} is not listed for sale",
		CodeSelfTrade:         "The buyer already holds this equipment",
		CodeInsufficientFunds: "Balance {{.Balance}} is below the asking price {{.Price}}",

		// Privileged-operation errors
		CodeUnauthorized: "Only the arena administrator may perform this operation",
		CodeGrantInvalid: "Mint grant is invalid",
		CodeGrantExpired: "Mint grant is expired",

		// Ledger guard errors
		CodeReentrantCall: "A ledger operation is already in progress",

		// Reward/payment collaborator errors
		CodeRewardTransferFailed: "The battle reward transfer was declined",
		CodePaymentFailed:        "The marketplace payment transfer was declined",
	},
}
