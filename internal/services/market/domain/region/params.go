package region

import (
	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

// Params are the chain constants governing the region lifecycle.
type Params struct {
	// VotingTime is the proposal voting window in blocks.
	VotingTime chain.BlockNumber
	// AuctionTime is the auction window in blocks.
	AuctionTime chain.BlockNumber
	// NoticePeriod is the resignation notice in blocks.
	NoticePeriod chain.BlockNumber
	// ProposalCooldown rate-limits proposals per account, in blocks.
	ProposalCooldown chain.BlockNumber
	// ThresholdPercent is the yes-share a vote must reach to pass.
	ThresholdPercent uint32
	// ProposalDeposit is held from proposers of regions and removals.
	ProposalDeposit *uint256.Int
	// MinimumDeposit is the lowest acceptable auction bid.
	MinimumDeposit *uint256.Int
	// LocationDeposit is held per registered location.
	LocationDeposit *uint256.Int
	// MaxListingDuration bounds a region's listing duration.
	MaxListingDuration uint32
	// PostcodeLimit bounds postcode byte length.
	PostcodeLimit int
	// SlashPenaltyPpm is the deposed-owner penalty fraction.
	SlashPenaltyPpm uint32
	// Treasury receives slashed deposits.
	Treasury chain.AccountID
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		VotingTime:         30,
		AuctionTime:        30,
		NoticePeriod:       100,
		ProposalCooldown:   10,
		ThresholdPercent:   75,
		ProposalDeposit:    chain.Amount(10_000),
		MinimumDeposit:     chain.Amount(100_000),
		LocationDeposit:    chain.Amount(1_000),
		MaxListingDuration: 10_000,
		PostcodeLimit:      10,
		SlashPenaltyPpm:    100_000, // 10%
		Treasury:           chain.AccountID("treasury"),
	}
}
