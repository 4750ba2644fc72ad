package leave

// BalanceEffect describes what a status transition does to the balance
// row of the request's (employee, leave type, ledger year).
type BalanceEffect int

const (
	// EffectNone leaves the balance untouched.
	EffectNone BalanceEffect = iota
	// EffectDebit adds the request's days to used_balance and subtracts
	// them from current_balance.
	EffectDebit
	// EffectCredit reverses a previous debit by the same amount.
	EffectCredit
)

// Transition is a (from, to) status pair. From is empty on insert.
type Transition struct {
	From LeaveRequestStatus
	To   LeaveRequestStatus
}

// balanceEffects is the full transition table of the ledger. Only the
// first approval debits, and only approved->rejected credits back.
// Every pair not listed here is a deliberate no-op, including
// approved->approved re-saves and every cancellation path.
var balanceEffects = map[Transition]BalanceEffect{
	{From: "", To: LeaveRequestStatusApproved}:                          EffectDebit,
	{From: LeaveRequestStatusPending, To: LeaveRequestStatusApproved}:   EffectDebit,
	{From: LeaveRequestStatusRejected, To: LeaveRequestStatusApproved}:  EffectDebit,
	{From: LeaveRequestStatusCancelled, To: LeaveRequestStatusApproved}: EffectDebit,
	{From: LeaveRequestStatusApproved, To: LeaveRequestStatusRejected}:  EffectCredit,
}

// EffectFor returns the balance effect of moving a request from oldStatus
// to newStatus. oldStatus is empty when the request is being inserted.
func EffectFor(oldStatus, newStatus LeaveRequestStatus) BalanceEffect {
	return balanceEffects[Transition{From: oldStatus, To: newStatus}]
}
