package chain

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
)

func TestCheckedAddOverflow(t *testing.T) {
	t.Parallel()

	max := new(uint256.Int).Not(uint256.NewInt(0))

	_, err := CheckedAdd(max, Amount(1))
	if !errors.Is(err, apperrors.New(apperrors.CodeArithmeticOverflow, "")) {
		t.Fatalf("expected ARITHMETIC_OVERFLOW, got %v", err)
	}

	sum, err := CheckedAdd(Amount(2), Amount(3))
	if err != nil {
		t.Fatalf("checked add: %v", err)
	}
	if !sum.Eq(Amount(5)) {
		t.Fatalf("sum = %v, want 5", sum)
	}
}

func TestCheckedSubUnderflow(t *testing.T) {
	t.Parallel()

	if _, err := CheckedSub(Amount(1), Amount(2)); err == nil {
		t.Fatal("expected underflow error")
	}
	diff, err := CheckedSub(Amount(5), Amount(2))
	if err != nil {
		t.Fatalf("checked sub: %v", err)
	}
	if !diff.Eq(Amount(3)) {
		t.Fatalf("diff = %v, want 3", diff)
	}
}

func TestMulPpm(t *testing.T) {
	t.Parallel()

	// 3% of 100,000 is 3,000.
	got, err := MulPpm(Amount(100_000), 30_000)
	if err != nil {
		t.Fatalf("mul ppm: %v", err)
	}
	if !got.Eq(Amount(3_000)) {
		t.Fatalf("tax = %v, want 3000", got)
	}
}

func TestCurrencyString(t *testing.T) {
	t.Parallel()

	if Native().String() != "native" {
		t.Fatalf("native string = %q", Native().String())
	}
	if TokenCurrency(4).String() != "token/4" {
		t.Fatalf("token string = %q", TokenCurrency(4).String())
	}
}
