package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// TenThousands is the number of basis points in 100%.
var TenThousands = uint64(10000)

// LessFee subtracts a fee expressed in basis points (ie. 0.25% = 25) from the
// given amount. The fee is rounded down so that the net amount never falls
// below its exact value.
func LessFee(amount, feeAsBasisPoint uint64) (withoutFee, calculatedFee uint64) {
	calculatedFee = Fee(amount, feeAsBasisPoint)
	return amount - calculatedFee, calculatedFee
}

// Fee returns floor(amount * feeAsBasisPoint / 10000). feeAsBasisPoint is
// capped at 10000.
func Fee(amount, feeAsBasisPoint uint64) uint64 {
	if feeAsBasisPoint > TenThousands {
		feeAsBasisPoint = TenThousands
	}
	amountDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	feeDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(feeAsBasisPoint), 0)

	return amountDecimal.
		Mul(feeDecimal).
		Div(decimal.NewFromBigInt(new(big.Int).SetUint64(TenThousands), 0)).
		Floor().
		BigInt().
		Uint64()
}
