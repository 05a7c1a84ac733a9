package errors

import (
	stderrors "errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := New(CodeRegionUnknown, "region 7 not found")
	if !stderrors.Is(err, New(CodeRegionUnknown, "other message")) {
		t.Fatal("expected errors with same code to match")
	}
	if stderrors.Is(err, New(CodeNoPermission, "region 7 not found")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := Wrap(CodeNotFound, "load region", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be found in chain")
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	if got := CodeOf(New(CodeBidTooLow, "bid too low")); got != CodeBidTooLow {
		t.Fatalf("code = %q, want %q", got, CodeBidTooLow)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestToGRPCStatusCarriesCode(t *testing.T) {
	t.Parallel()

	err := New(CodeUserNotWhitelisted, "caller is not whitelisted").ToGRPCStatus()
	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected grpc status error")
	}
	if st.Code() != codes.PermissionDenied {
		t.Fatalf("grpc code = %v, want %v", st.Code(), codes.PermissionDenied)
	}
	if st.Message() != "caller is not whitelisted" {
		t.Fatalf("message = %q", st.Message())
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeBidTooLow, codes.InvalidArgument},
		{CodeTakeoverAlreadyPending, codes.FailedPrecondition},
		{CodeNotEnoughToken, codes.FailedPrecondition},
		{CodePropertyAssetNotRegistered, codes.NotFound},
		{CodeRoleAlreadyAssigned, codes.AlreadyExists},
		{CodeArithmeticOverflow, codes.OutOfRange},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("GRPCCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
