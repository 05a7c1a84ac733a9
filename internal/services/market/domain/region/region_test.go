package region

import (
	"testing"

	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/bank"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/nft"
	"github.com/deedshare/deedshare/internal/services/market/domain/roles"
)

const (
	alice = chain.AccountID("alice")
	bob   = chain.AccountID("bob")
	carol = chain.AccountID("carol")
)

type harness struct {
	t      *testing.T
	state  *State
	ledger *bank.Ledger
	perms  *roles.Registry
	nfts   *nft.Registry
	params Params
	height chain.BlockNumber
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t:      t,
		state:  NewState(),
		ledger: bank.NewLedger(),
		perms:  roles.NewRegistry(),
		nfts:   nft.NewRegistry(),
		params: DefaultParams(),
	}
}

func (h *harness) view() View {
	return View{
		State:  h.state,
		Ledger: h.ledger,
		Roles:  h.perms,
		NFTs:   h.nfts,
		Height: h.height,
		Params: h.params,
	}
}

func (h *harness) fund(account chain.AccountID, amount uint64) {
	h.t.Helper()
	if err := h.ledger.Mint(chain.Native(), account, chain.Amount(amount)); err != nil {
		h.t.Fatalf("mint: %v", err)
	}
}

func (h *harness) whitelist(accounts ...chain.AccountID) {
	h.t.Helper()
	for _, account := range accounts {
		if err := h.perms.Assign(account, roles.RoleWhitelisted); err != nil {
			h.t.Fatalf("whitelist %s: %v", account, err)
		}
	}
}

func (h *harness) operator(account chain.AccountID) {
	h.t.Helper()
	if err := h.perms.Assign(account, roles.RoleRegionalOperator); err != nil {
		h.t.Fatalf("assign operator: %v", err)
	}
}

// commit folds a decision's events at the current height, the way the
// runtime does after a successful append.
func (h *harness) commit(events []event.Event, err error) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("decide: %v", err)
	}
	for _, evt := range events {
		evt.Height = h.height
		if err := Apply(h.view(), evt); err != nil {
			h.t.Fatalf("apply %s: %v", evt.Type, err)
		}
	}
}

func (h *harness) sweep() {
	h.t.Helper()
	h.commit(Sweep(h.view()))
}

func wantCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want code %s", code)
	}
	if got := apperrors.CodeOf(err); got != code {
		t.Fatalf("error code = %s, want %s", got, code)
	}
}

func wantBalance(t *testing.T, h *harness, account chain.AccountID, amount uint64) {
	t.Helper()
	if got := h.ledger.Balance(chain.Native(), account); !got.Eq(chain.Amount(amount)) {
		t.Fatalf("balance[%s] = %s, want %d", account, got, amount)
	}
}

// createRegion drives a full propose, vote, bid, create round and returns the
// new region id. alice is the operator-proposer and winning bidder.
func createRegion(t *testing.T, h *harness, ident Identifier) chain.RegionID {
	t.Helper()
	h.commit(ProposeNewRegion(h.view(), alice, ident))
	h.commit(VoteOnRegionProposal(h.view(), alice, ident, VoteYes))
	h.height += h.params.VotingTime
	h.sweep()
	h.commit(BidOnRegion(h.view(), alice, ident, h.params.MinimumDeposit))
	h.height += h.params.AuctionTime
	h.commit(CreateNewRegion(h.view(), alice, ident, 30, 30_000))
	id, ok := h.state.ByIdentifier[ident]
	if !ok {
		t.Fatalf("region %q not created", ident)
	}
	return id
}

func TestRegionLifecycle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice)
	h.operator(alice)

	id := createRegion(t, h, "japan")

	reg := h.state.Regions[id]
	if reg.Owner != alice {
		t.Fatalf("owner = %s, want %s", reg.Owner, alice)
	}
	if reg.ListingDuration != 30 || reg.TaxPpm != 30_000 {
		t.Fatalf("region params = (%d, %d), want (30, 30000)", reg.ListingDuration, reg.TaxPpm)
	}
	if !reg.Deposit.Eq(h.params.MinimumDeposit) {
		t.Fatalf("deposit = %s, want %s", reg.Deposit, h.params.MinimumDeposit)
	}
	// Proposal deposit released, winning bid still held.
	wantBalance(t, h, alice, 900_000)
	if held := h.ledger.HeldBalance(chain.HoldRegionDeposit, alice); !held.Eq(h.params.MinimumDeposit) {
		t.Fatalf("held = %s, want %s", held, h.params.MinimumDeposit)
	}
	if _, ok := h.nfts.Owner(reg.Collection, 0); ok {
		t.Fatalf("fresh collection should have no items")
	}
}

func TestProposeValidation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)

	_, err := ProposeNewRegion(h.view(), bob, "japan")
	wantCode(t, err, apperrors.CodeNoPermission)

	_, err = ProposeNewRegion(h.view(), alice, "")
	wantCode(t, err, apperrors.CodeIdentifierEmpty)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))

	_, err = ProposeNewRegion(h.view(), alice, "japan")
	wantCode(t, err, apperrors.CodeProposalAlreadyPending)

	_, err = ProposeNewRegion(h.view(), alice, "england")
	wantCode(t, err, apperrors.CodeProposalCooldownActive)

	h.height += h.params.ProposalCooldown
	h.commit(ProposeNewRegion(h.view(), alice, "england"))
}

func TestProposeExistingRegionRejected(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice)
	h.operator(alice)
	createRegion(t, h, "japan")

	h.height += h.params.ProposalCooldown
	_, err := ProposeNewRegion(h.view(), alice, "japan")
	wantCode(t, err, apperrors.CodeRegionAlreadyExists)
}

func TestVoteReplacesPreviousDirection(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 200_000)
	h.whitelist(alice, bob)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), bob, "japan", VoteNo))
	h.commit(VoteOnRegionProposal(h.view(), bob, "japan", VoteYes))

	stats := h.state.Proposals["japan"].Stats
	if !stats.No.IsZero() {
		t.Fatalf("no power = %s, want 0 after re-vote", stats.No)
	}
	if !stats.Yes.Eq(chain.Amount(200_000)) {
		t.Fatalf("yes power = %s, want 200000", stats.Yes)
	}

	_, err := VoteOnRegionProposal(h.view(), bob, "japan", Vote("maybe"))
	wantCode(t, err, apperrors.CodeInvalidVote)

	h.height += h.params.VotingTime
	_, err = VoteOnRegionProposal(h.view(), bob, "japan", VoteYes)
	wantCode(t, err, apperrors.CodeVotingClosed)
}

func TestFailedProposalSweptWithDepositRelease(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 3_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), alice, "japan", VoteYes))
	h.commit(VoteOnRegionProposal(h.view(), bob, "japan", VoteNo))

	h.height += h.params.VotingTime
	h.sweep()

	if _, pending := h.state.Proposals["japan"]; pending {
		t.Fatalf("failed proposal should be purged")
	}
	if _, open := h.state.Auctions["japan"]; open {
		t.Fatalf("failed proposal must not open an auction")
	}
	wantBalance(t, h, alice, 1_000_000)
}

func TestBidResolvesExpiredProposalLazily(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), alice, "japan", VoteYes))
	h.height += h.params.VotingTime

	// No sweep ran; the bid itself converts the passed proposal.
	events, err := BidOnRegion(h.view(), alice, "japan", h.params.MinimumDeposit)
	if err != nil {
		t.Fatalf("bid: %v", err)
	}
	if len(events) != 2 || events[0].Type != TypeAuctionOpened || events[1].Type != TypeBidPlaced {
		t.Fatalf("events = %v, want auction_opened then bid_placed", events)
	}
	h.commit(events, nil)
	if _, open := h.state.Auctions["japan"]; !open {
		t.Fatalf("auction not opened by lazy resolution")
	}
}

func TestBidOnExpiredFailedProposal(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 3_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), bob, "japan", VoteNo))
	h.height += h.params.VotingTime

	_, err := BidOnRegion(h.view(), alice, "japan", h.params.MinimumDeposit)
	wantCode(t, err, apperrors.CodeAuctionUnknown)
}

func TestOutbidReleasesPreviousCollateral(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), alice, "japan", VoteYes))
	h.height += h.params.VotingTime
	h.sweep()

	h.commit(BidOnRegion(h.view(), alice, "japan", chain.Amount(100_000)))

	_, err := BidOnRegion(h.view(), bob, "japan", chain.Amount(100_000))
	wantCode(t, err, apperrors.CodeBidTooLow)

	_, err = BidOnRegion(h.view(), bob, "japan", chain.Amount(99_999))
	wantCode(t, err, apperrors.CodeBidTooLow)

	h.commit(BidOnRegion(h.view(), bob, "japan", chain.Amount(100_001)))

	// alice's collateral is back; bob's is held.
	wantBalance(t, h, alice, 1_000_000)
	if held := h.ledger.HeldBalance(chain.HoldRegionDeposit, bob); !held.Eq(chain.Amount(100_001)) {
		t.Fatalf("bob held = %s, want 100001", held)
	}
}

func TestHighBidderRaisesWithDifferenceOnly(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 110_000)
	h.whitelist(alice)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), alice, "japan", VoteYes))
	h.height += h.params.VotingTime
	h.sweep()

	h.commit(BidOnRegion(h.view(), alice, "japan", chain.Amount(100_000)))
	wantBalance(t, h, alice, 10_000)

	// Raising an own high bid only needs the difference free; the
	// standing hold is released in the same batch.
	h.commit(BidOnRegion(h.view(), alice, "japan", chain.Amount(110_000)))

	wantBalance(t, h, alice, 0)
	if held := h.ledger.HeldBalance(chain.HoldRegionDeposit, alice); !held.Eq(chain.Amount(110_000)) {
		t.Fatalf("alice held = %s, want 110000", held)
	}
	if got := h.state.Auctions["japan"].HighBid; !got.Eq(chain.Amount(110_000)) {
		t.Fatalf("high bid = %s, want 110000", got)
	}
}

func TestAuctionWithoutBidsLapses(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), alice, "japan", VoteYes))
	h.height += h.params.VotingTime
	h.sweep()

	h.height += h.params.AuctionTime
	h.sweep()

	if _, open := h.state.Auctions["japan"]; open {
		t.Fatalf("bidless auction should lapse")
	}
	wantBalance(t, h, alice, 1_000_000)
}

func TestWonAuctionSurvivesSweepUntilClaim(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), alice, "japan", VoteYes))
	h.height += h.params.VotingTime
	h.sweep()
	h.commit(BidOnRegion(h.view(), alice, "japan", h.params.MinimumDeposit))

	h.height += h.params.AuctionTime
	h.sweep()
	h.sweep()

	if _, open := h.state.Auctions["japan"]; !open {
		t.Fatalf("won auction must persist until the winner claims")
	}
	h.commit(CreateNewRegion(h.view(), alice, "japan", 30, 0))
}

func TestCreateRegionValidation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)

	h.commit(ProposeNewRegion(h.view(), alice, "japan"))
	h.commit(VoteOnRegionProposal(h.view(), alice, "japan", VoteYes))
	h.height += h.params.VotingTime
	h.sweep()
	h.commit(BidOnRegion(h.view(), alice, "japan", h.params.MinimumDeposit))

	_, err := CreateNewRegion(h.view(), alice, "japan", 30, 0)
	wantCode(t, err, apperrors.CodeAuctionStillOpen)

	h.height += h.params.AuctionTime

	_, err = CreateNewRegion(h.view(), bob, "japan", 30, 0)
	wantCode(t, err, apperrors.CodeNotHighestBidder)

	_, err = CreateNewRegion(h.view(), alice, "japan", 0, 0)
	wantCode(t, err, apperrors.CodeListingDurationCantBeZero)

	_, err = CreateNewRegion(h.view(), alice, "japan", h.params.MaxListingDuration+1, 0)
	wantCode(t, err, apperrors.CodeListingDurationTooHigh)

	// Boundary value is accepted.
	h.commit(CreateNewRegion(h.view(), alice, "japan", h.params.MaxListingDuration, 0))
}

func TestAdjustDurationAndTax(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	_, err := AdjustListingDuration(h.view(), bob, id, 60)
	wantCode(t, err, apperrors.CodeNoPermission)

	_, err = AdjustListingDuration(h.view(), alice, id, 0)
	wantCode(t, err, apperrors.CodeListingDurationCantBeZero)

	h.commit(AdjustListingDuration(h.view(), alice, id, 60))
	h.commit(AdjustRegionTax(h.view(), alice, id, 50_000))

	reg := h.state.Regions[id]
	if reg.ListingDuration != 60 || reg.TaxPpm != 50_000 {
		t.Fatalf("region params = (%d, %d), want (60, 50000)", reg.ListingDuration, reg.TaxPpm)
	}
}

func TestTakeoverAccept(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 500_000)
	h.whitelist(alice, bob)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	_, err := ProposeRegionTakeover(h.view(), alice, id)
	wantCode(t, err, apperrors.CodeAlreadyRegionOwner)

	_, err = HandleTakeover(h.view(), alice, id, true)
	wantCode(t, err, apperrors.CodeNoTakeoverRequest)

	h.commit(ProposeRegionTakeover(h.view(), bob, id))

	_, err = ProposeRegionTakeover(h.view(), bob, id)
	wantCode(t, err, apperrors.CodeTakeoverAlreadyPending)

	_, err = HandleTakeover(h.view(), bob, id, true)
	wantCode(t, err, apperrors.CodeNoPermission)

	h.commit(HandleTakeover(h.view(), alice, id, true))

	reg := h.state.Regions[id]
	if reg.Owner != bob {
		t.Fatalf("owner = %s, want %s", reg.Owner, bob)
	}
	// alice recovers her full original deposit; bob's matching deposit is
	// now the permanent hold.
	wantBalance(t, h, alice, 1_000_000)
	wantBalance(t, h, bob, 400_000)
	if held := h.ledger.HeldBalance(chain.HoldRegionDeposit, bob); !held.Eq(chain.Amount(100_000)) {
		t.Fatalf("bob held = %s, want 100000", held)
	}
}

func TestTakeoverRejectAndCancel(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 500_000)
	h.whitelist(alice, bob)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	h.commit(ProposeRegionTakeover(h.view(), bob, id))
	h.commit(HandleTakeover(h.view(), alice, id, false))
	wantBalance(t, h, bob, 500_000)

	h.commit(ProposeRegionTakeover(h.view(), bob, id))

	_, err := CancelRegionTakeover(h.view(), alice, id)
	wantCode(t, err, apperrors.CodeNoPermission)

	h.commit(CancelRegionTakeover(h.view(), bob, id))
	wantBalance(t, h, bob, 500_000)

	if h.state.Regions[id].Owner != alice {
		t.Fatalf("rejected takeover must not change ownership")
	}
}

func TestRemovalVoteReplacesOwnerWithSlash(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.fund(carol, 1_000_000)
	h.whitelist(alice, bob, carol)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	h.commit(ProposeRemoveRegionalOperator(h.view(), bob, id))

	_, err := ProposeRemoveRegionalOperator(h.view(), carol, id)
	wantCode(t, err, apperrors.CodeRemovalAlreadyPending)

	h.commit(VoteOnRemoveOwnerProposal(h.view(), bob, id, VoteYes))
	h.commit(VoteOnRemoveOwnerProposal(h.view(), carol, id, VoteYes))
	h.height += h.params.VotingTime
	h.sweep()

	if _, open := h.state.Replacements[id]; !open {
		t.Fatalf("passed removal should open a replacement auction")
	}
	// Contest deposit back to the proposer at auction open.
	wantBalance(t, h, bob, 1_000_000)

	_, err = BidOnRegionReplacement(h.view(), alice, id, chain.Amount(150_000))
	wantCode(t, err, apperrors.CodeAlreadyRegionOwner)

	h.commit(BidOnRegionReplacement(h.view(), carol, id, chain.Amount(150_000)))
	h.height += h.params.AuctionTime
	h.sweep()

	reg := h.state.Regions[id]
	if reg.Owner != carol {
		t.Fatalf("owner = %s, want %s", reg.Owner, carol)
	}
	if !reg.Deposit.Eq(chain.Amount(150_000)) {
		t.Fatalf("deposit = %s, want 150000", reg.Deposit)
	}
	// 10% of the 100k deposit slashed to treasury, 90k refunded.
	wantBalance(t, h, h.params.Treasury, 10_000)
	wantBalance(t, h, alice, 990_000)
	if held := h.ledger.HeldBalance(chain.HoldRegionDeposit, alice); !held.IsZero() {
		t.Fatalf("alice held = %s, want 0", held)
	}
}

func TestRemovalWithoutSupportRejected(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	h.commit(ProposeRemoveRegionalOperator(h.view(), bob, id))
	h.height += h.params.VotingTime
	h.sweep()

	if _, open := h.state.Replacements[id]; open {
		t.Fatalf("voteless removal must not open a replacement auction")
	}
	if h.state.Regions[id].Owner != alice {
		t.Fatalf("failed removal must not change ownership")
	}
	wantBalance(t, h, bob, 1_000_000)
}

func TestReplacementWithoutBidsLapses(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	h.commit(ProposeRemoveRegionalOperator(h.view(), bob, id))
	h.commit(VoteOnRemoveOwnerProposal(h.view(), bob, id, VoteYes))
	h.height += h.params.VotingTime
	h.sweep()
	h.height += h.params.AuctionTime
	h.sweep()

	reg := h.state.Regions[id]
	if reg.Owner != alice {
		t.Fatalf("bidless replacement must leave the owner in place")
	}
	if held := h.ledger.HeldBalance(chain.HoldRegionDeposit, alice); !held.Eq(chain.Amount(100_000)) {
		t.Fatalf("alice held = %s, want 100000", held)
	}
}

func TestResignationConcludesWithoutSlash(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	_, err := InitiateRegionOwnerResignation(h.view(), bob, id)
	wantCode(t, err, apperrors.CodeNoPermission)

	h.commit(InitiateRegionOwnerResignation(h.view(), alice, id))

	_, err = InitiateRegionOwnerResignation(h.view(), alice, id)
	wantCode(t, err, apperrors.CodeResignationPending)

	// Notice has not elapsed: no replacement auction yet.
	h.sweep()
	if _, open := h.state.Replacements[id]; open {
		t.Fatalf("replacement opened before notice elapsed")
	}

	h.height += h.params.NoticePeriod
	h.sweep()
	replacement, open := h.state.Replacements[id]
	if !open || !replacement.Resignation {
		t.Fatalf("resignation notice should open a resignation auction")
	}

	h.commit(BidOnRegionReplacement(h.view(), bob, id, chain.Amount(120_000)))
	h.height += h.params.AuctionTime
	h.sweep()

	if h.state.Regions[id].Owner != bob {
		t.Fatalf("owner = %s, want %s", h.state.Regions[id].Owner, bob)
	}
	// Full refund, no slash, nothing to treasury.
	wantBalance(t, h, alice, 1_000_000)
	wantBalance(t, h, h.params.Treasury, 0)
}

func TestReplacementBidValidation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.fund(carol, 1_000_000)
	h.whitelist(alice, bob, carol)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	_, err := BidOnRegionReplacement(h.view(), bob, id, chain.Amount(150_000))
	wantCode(t, err, apperrors.CodeAuctionUnknown)

	h.commit(InitiateRegionOwnerResignation(h.view(), alice, id))
	h.height += h.params.NoticePeriod
	h.sweep()

	_, err = BidOnRegionReplacement(h.view(), bob, id, chain.Amount(99_999))
	wantCode(t, err, apperrors.CodeBidTooLow)

	h.commit(BidOnRegionReplacement(h.view(), bob, id, chain.Amount(150_000)))

	_, err = BidOnRegionReplacement(h.view(), carol, id, chain.Amount(150_000))
	wantCode(t, err, apperrors.CodeBidTooLow)

	h.commit(BidOnRegionReplacement(h.view(), carol, id, chain.Amount(150_001)))
	wantBalance(t, h, bob, 1_000_000)

	// Raising an own standing bid only needs the difference free.
	h.commit(BidOnRegionReplacement(h.view(), carol, id, chain.Amount(1_000_000)))
	if held := h.ledger.HeldBalance(chain.HoldRegionDeposit, carol); !held.Eq(chain.Amount(1_000_000)) {
		t.Fatalf("carol held = %s, want 1000000", held)
	}
	wantBalance(t, h, carol, 0)
}

func TestLawyerRegistration(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	_, err := RegisterLawyer(h.view(), bob, id, carol)
	wantCode(t, err, apperrors.CodeNoPermission)

	h.commit(RegisterLawyer(h.view(), alice, id, carol))

	if !h.state.IsLawyer(id, carol) {
		t.Fatalf("carol should be a registered lawyer")
	}

	_, err = RegisterLawyer(h.view(), alice, id, carol)
	wantCode(t, err, apperrors.CodeLawyerAlreadyAssigned)
}

func TestCreateNewLocation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.whitelist(alice)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	_, err := CreateNewLocation(h.view(), bob, id, "10,10")
	wantCode(t, err, apperrors.CodeNoPermission)

	_, err = CreateNewLocation(h.view(), alice, id, "")
	wantCode(t, err, apperrors.CodePostcodeEmpty)

	_, err = CreateNewLocation(h.view(), alice, id, "12345678901")
	wantCode(t, err, apperrors.CodePostcodeTooLong)

	h.commit(CreateNewLocation(h.view(), alice, id, "10,10"))

	_, err = CreateNewLocation(h.view(), alice, id, "10,10")
	wantCode(t, err, apperrors.CodeLocationRegistered)

	if h.state.Regions[id].LocationCount != 1 {
		t.Fatalf("location count = %d, want 1", h.state.Regions[id].LocationCount)
	}
	if held := h.ledger.HeldBalance(chain.HoldLocationDeposit, alice); !held.Eq(chain.Amount(1_000)) {
		t.Fatalf("location hold = %s, want 1000", held)
	}
}

func TestThresholdMet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		yes, no   uint64
		threshold uint32
		want      bool
	}{
		{"no votes never passes", 0, 0, 75, false},
		{"unanimous yes", 100, 0, 75, true},
		{"exactly at threshold", 75, 25, 75, true},
		{"just below threshold", 74, 26, 75, false},
		{"all no", 0, 100, 75, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			stats := VoteStats{Yes: uint256.NewInt(tc.yes), No: uint256.NewInt(tc.no)}
			got, err := thresholdMet(stats, tc.threshold)
			if err != nil {
				t.Fatalf("thresholdMet: %v", err)
			}
			if got != tc.want {
				t.Fatalf("thresholdMet(%d, %d) = %v, want %v", tc.yes, tc.no, got, tc.want)
			}
		})
	}
}

func TestRemovalVoteWindowCloses(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(alice, 1_000_000)
	h.fund(bob, 1_000_000)
	h.whitelist(alice, bob)
	h.operator(alice)
	id := createRegion(t, h, "japan")

	_, err := VoteOnRemoveOwnerProposal(h.view(), bob, id, VoteYes)
	wantCode(t, err, apperrors.CodeProposalUnknown)

	h.commit(ProposeRemoveRegionalOperator(h.view(), bob, id))
	h.height += h.params.VotingTime

	_, err = VoteOnRemoveOwnerProposal(h.view(), bob, id, VoteYes)
	wantCode(t, err, apperrors.CodeVotingClosed)
}
