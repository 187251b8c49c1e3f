package flow

import (
	"fmt"
	"time"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
)

func incomingPaymentScope() core.AccessScope {
	return core.AccessScope{
		Type:    core.AccessTypeIncomingPayment,
		Actions: []string{"read", "complete", "create"},
	}
}

func quoteScope(kind core.SessionKind) core.AccessScope {
	actions := []string{"read", "create"}
	if kind == core.SessionKindRecurring {
		actions = []string{"create", "read", "read-all"}
	}

	return core.AccessScope{
		Type:    core.AccessTypeQuote,
		Actions: actions,
	}
}

// outgoingPaymentScope bounds the interactive grant by the quoted debit
// amount. A recurring grant authorizes many future debits, so it adds the
// list actions and a monthly repeating interval anchored at request time.
func outgoingPaymentScope(walletID string, debit core.Amount, kind core.SessionKind) core.AccessScope {
	scope := core.AccessScope{
		Type:       core.AccessTypeOutgoingPayment,
		Identifier: walletID,
		Actions:    []string{"read", "read-all", "create"},
		Limits:     &core.AccessLimits{DebitAmount: &debit},
	}

	if kind == core.SessionKindRecurring {
		scope.Actions = []string{"list", "list-all", "read", "read-all", "create"}
		scope.Limits.Interval = fmt.Sprintf("R/%s/P1M", time.Now().UTC().Format(time.RFC3339))
	}

	return scope
}

func incomingAmount(input core.StartPaymentInput, kind core.SessionKind, receiving *core.WalletAddress) core.Amount {
	value := core.MinorUnits(input.Contribution)
	if kind == core.SessionKindRecurring {
		value = recurringIncomingValue
	}

	return core.Amount{
		Value:      value,
		AssetCode:  receiving.AssetCode,
		AssetScale: receiving.AssetScale,
	}
}

func paymentDescription(input core.StartPaymentInput, kind core.SessionKind) string {
	if kind == core.SessionKindRecurring {
		return fmt.Sprintf("Donation for STUDENT : %s", input.StudentID)
	}

	return fmt.Sprintf("Payment For -  Student ID : %s", input.StudentID)
}
