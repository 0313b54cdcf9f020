package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = allocation, W2xxx = loans, W3xxx = breakeven, W4xxx = scenario files.
type WarningCode string

const (
	WarnUnallocatedArea    WarningCode = "W1001" // line shares sum below 1, part of the shelf area earns nothing
	WarnLossMaking         WarningCode = "W1002" // monthly profit is negative
	WarnAllLinesDisabled   WarningCode = "W1003" // every storage line is switched off
	WarnZeroLoanRate       WarningCode = "W2001" // loan line earns no interest, minimum loan reported as 0
	WarnLoanRiskDegenerate WarningCode = "W2002" // default or liquidity leaves no recoverable interest
	WarnBreakevenNotFound  WarningCode = "W3001" // no sign change within the widened bracket
	WarnUnknownScenarioKey WarningCode = "W4001" // key in an imported scenario was ignored
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
