// Package errors provides structured error handling for the market core.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Permission errors
	CodeUserNotWhitelisted Code = "USER_NOT_WHITELISTED"
	CodeNoPermission       Code = "NO_PERMISSION"
	CodeAdminRequired      Code = "ADMIN_REQUIRED"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"

	// NotFound errors
	CodeRegionUnknown              Code = "REGION_UNKNOWN"
	CodeProposalUnknown            Code = "PROPOSAL_UNKNOWN"
	CodeAuctionUnknown             Code = "AUCTION_UNKNOWN"
	CodeNoTakeoverRequest          Code = "NO_TAKEOVER_REQUEST"
	CodePropertyAssetNotRegistered Code = "PROPERTY_ASSET_NOT_REGISTERED"
	CodeLocationUnknown            Code = "LOCATION_UNKNOWN"
	CodeLawyerCaseUnknown          Code = "LAWYER_CASE_UNKNOWN"

	// Conflict/state errors
	CodeProposalAlreadyPending Code = "PROPOSAL_ALREADY_PENDING"
	CodeRegionAlreadyExists    Code = "REGION_ALREADY_EXISTS"
	CodeTakeoverAlreadyPending Code = "TAKEOVER_ALREADY_PENDING"
	CodeLocationRegistered     Code = "LOCATION_REGISTERED"
	CodeAlreadyRegionOwner     Code = "ALREADY_REGION_OWNER"
	CodeVotingStillOpen        Code = "VOTING_STILL_OPEN"
	CodeVotingClosed           Code = "VOTING_CLOSED"
	CodeAuctionStillOpen       Code = "AUCTION_STILL_OPEN"
	CodeAuctionClosed          Code = "AUCTION_CLOSED"
	CodeNotHighestBidder       Code = "NOT_HIGHEST_BIDDER"
	CodeRemovalAlreadyPending  Code = "REMOVAL_ALREADY_PENDING"
	CodeResignationPending     Code = "RESIGNATION_PENDING"
	CodeLawyerAlreadyAssigned  Code = "LAWYER_ALREADY_ASSIGNED"
	CodeLawyerNotRegistered    Code = "LAWYER_NOT_REGISTERED"
	CodeCaseNotPending         Code = "CASE_NOT_PENDING"
	CodeCaseTerminal           Code = "CASE_TERMINAL"
	CodeTokensStillDistributed Code = "TOKENS_STILL_DISTRIBUTED"
	CodeAssetFinalized         Code = "ASSET_FINALIZED"

	// Validation errors
	CodeListingDurationCantBeZero Code = "LISTING_DURATION_CANT_BE_ZERO"
	CodeListingDurationTooHigh    Code = "LISTING_DURATION_TOO_HIGH"
	CodePostcodeEmpty             Code = "POSTCODE_EMPTY"
	CodePostcodeTooLong           Code = "POSTCODE_TOO_LONG"
	CodeTokenAmountZero           Code = "TOKEN_AMOUNT_ZERO"
	CodeTokenAmountTooHigh        Code = "TOKEN_AMOUNT_TOO_HIGH"
	CodeBidTooLow                 Code = "BID_TOO_LOW"
	CodeTooManyOwners             Code = "TOO_MANY_OWNERS"
	CodeTooManyCostEntries        Code = "TOO_MANY_COST_ENTRIES"
	CodeProposalCooldownActive    Code = "PROPOSAL_COOLDOWN_ACTIVE"
	CodeIdentifierEmpty           Code = "IDENTIFIER_EMPTY"
	CodeInvalidVote               Code = "INVALID_VOTE"
	CodeInvalidRequest            Code = "INVALID_REQUEST"

	// Arithmetic errors
	CodeArithmeticOverflow Code = "ARITHMETIC_OVERFLOW"
	CodeMultiplyError      Code = "MULTIPLY_ERROR"
	CodeNotEnoughToken     Code = "NOT_ENOUGH_TOKEN"

	// Funds errors
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodeInsufficientHold    Code = "INSUFFICIENT_HOLD"

	// Role registry errors
	CodeRoleAlreadyAssigned Code = "ROLE_ALREADY_ASSIGNED"
	CodeRoleNotAssigned     Code = "ROLE_NOT_ASSIGNED"

	// NFT registry errors
	CodeCollectionUnknown Code = "COLLECTION_UNKNOWN"
	CodeItemUnknown       Code = "ITEM_UNKNOWN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeListingDurationCantBeZero,
		CodeListingDurationTooHigh,
		CodePostcodeEmpty,
		CodePostcodeTooLong,
		CodeTokenAmountZero,
		CodeTokenAmountTooHigh,
		CodeBidTooLow,
		CodeTooManyOwners,
		CodeTooManyCostEntries,
		CodeProposalCooldownActive,
		CodeIdentifierEmpty,
		CodeInvalidVote,
		CodeInvalidRequest:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeProposalAlreadyPending,
		CodeRegionAlreadyExists,
		CodeTakeoverAlreadyPending,
		CodeLocationRegistered,
		CodeAlreadyRegionOwner,
		CodeVotingStillOpen,
		CodeVotingClosed,
		CodeAuctionStillOpen,
		CodeAuctionClosed,
		CodeNotHighestBidder,
		CodeRemovalAlreadyPending,
		CodeResignationPending,
		CodeLawyerAlreadyAssigned,
		CodeLawyerNotRegistered,
		CodeCaseNotPending,
		CodeCaseTerminal,
		CodeTokensStillDistributed,
		CodeAssetFinalized,
		CodeNotEnoughToken,
		CodeInsufficientBalance,
		CodeInsufficientHold:
		return codes.FailedPrecondition

	// NotFound - referenced entity does not exist
	case CodeRegionUnknown,
		CodeProposalUnknown,
		CodeAuctionUnknown,
		CodeNoTakeoverRequest,
		CodePropertyAssetNotRegistered,
		CodeLocationUnknown,
		CodeLawyerCaseUnknown,
		CodeRoleNotAssigned,
		CodeCollectionUnknown,
		CodeItemUnknown,
		CodeNotFound:
		return codes.NotFound

	// AlreadyExists - uniqueness violations
	case CodeRoleAlreadyAssigned:
		return codes.AlreadyExists

	// PermissionDenied - caller lacks required role/ownership
	case CodeUserNotWhitelisted,
		CodeNoPermission,
		CodeAdminRequired:
		return codes.PermissionDenied

	// Unauthenticated - missing or unverifiable credentials
	case CodeTokenInvalid,
		CodeTokenExpired:
		return codes.Unauthenticated

	// OutOfRange - arithmetic failures
	case CodeArithmeticOverflow,
		CodeMultiplyError:
		return codes.OutOfRange

	default:
		return codes.Internal
	}
}
