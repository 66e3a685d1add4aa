package tx

import "github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"

// Fee-tier tags. The network prices a flat fee by amount tier; the tag is
// carried on the transaction, the fee itself is debited node-side.
const (
	OUStandard = "1" // amounts below 1000 display units
	OULarge    = "3"
)

// feeTierThreshold is the display-unit amount at which the large tier starts.
const feeTierThreshold = 1000

// Flat fees per tier, in micro-units (0.001 and 0.003 display units).
const (
	FeeStandard types.Amount = 1_000
	FeeLarge    types.Amount = 3_000
)

// OUTag returns the fee-tier tag for an amount.
func OUTag(amount types.Amount) string {
	if amount.Units() < feeTierThreshold {
		return OUStandard
	}
	return OULarge
}

// EstimateFee mirrors the network's flat fee schedule for client-side cost
// estimation before submission.
func EstimateFee(amount types.Amount) types.Amount {
	if amount.Units() < feeTierThreshold {
		return FeeStandard
	}
	return FeeLarge
}
