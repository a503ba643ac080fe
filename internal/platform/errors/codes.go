package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Player errors
	CodeAlreadyRegistered Code = "ALREADY_REGISTERED"
	CodeNotRegistered     Code = "NOT_REGISTERED"
	CodePlayerInactive    Code = "PLAYER_INACTIVE"
	CodeSelfBattle        Code = "SELF_BATTLE"

	// Equipment errors
	CodeEquipmentNotFound Code = "EQUIPMENT_NOT_FOUND"
	CodeNotOwner          Code = "NOT_OWNER"
	CodeInvalidCategory   Code = "INVALID_CATEGORY"
	CodeInvalidRarity     Code = "INVALID_RARITY"

	// Marketplace errors
	CodeInvalidPrice      Code = "INVALID_PRICE"
	CodeNotForSale        Code = "NOT_FOR_SALE"
	CodeSelfTrade         Code = "SELF_TRADE"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"

	// Privileged-operation errors
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeGrantInvalid Code = "GRANT_INVALID"
	CodeGrantExpired Code = "GRANT_EXPIRED"

	// Ledger guard errors
	CodeReentrantCall Code = "REENTRANT_CALL"

	// Reward/payment collaborator errors
	CodeRewardTransferFailed Code = "REWARD_TRANSFER_FAILED"
	CodePaymentFailed        Code = "PAYMENT_FAILED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidPrice,
		CodeInvalidCategory,
		CodeInvalidRarity,
		CodeSelfBattle,
		CodeSelfTrade:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeAlreadyRegistered,
		CodePlayerInactive,
		CodeNotForSale,
		CodeInsufficientFunds:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotRegistered,
		CodeEquipmentNotFound:
		return codes.NotFound

	// PermissionDenied - caller lacks rights over the resource
	case CodeNotOwner,
		CodeUnauthorized:
		return codes.PermissionDenied

	// Unauthenticated - privileged-op credential problems
	case CodeGrantInvalid,
		CodeGrantExpired:
		return codes.Unauthenticated

	// Aborted - nested mutation attempted mid-operation
	case CodeReentrantCall:
		return codes.Aborted

	// Unavailable - the external currency collaborator declined
	case CodeRewardTransferFailed,
		CodePaymentFailed:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}
