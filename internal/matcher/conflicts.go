package matcher

import (
	"github.com/shopspring/decimal"

	"garage-reconciliation/internal/domain"
)

// AmountConflict groups obligations that share exactly the same amount.
type AmountConflict struct {
	Amount        decimal.Decimal
	ObligationIDs []string

	indexes []int
}

// FindAmountConflicts returns every amount shared by two or more
// obligations, ordered by the first obligation carrying it. IDs inside a
// conflict keep input order.
func FindAmountConflicts(obligations []domain.Obligation) []AmountConflict {
	var groups []AmountConflict
	for i, o := range obligations {
		placed := false
		for g := range groups {
			if groups[g].Amount.Equal(o.Amount) {
				groups[g].ObligationIDs = append(groups[g].ObligationIDs, o.ID)
				groups[g].indexes = append(groups[g].indexes, i)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, AmountConflict{
				Amount:        o.Amount,
				ObligationIDs: []string{o.ID},
				indexes:       []int{i},
			})
		}
	}

	conflicts := make([]AmountConflict, 0)
	for _, g := range groups {
		if len(g.indexes) > 1 {
			conflicts = append(conflicts, g)
		}
	}
	return conflicts
}

// conflictingPeers maps each obligation index to the IDs of the other
// obligations sharing its amount.
func conflictingPeers(obligations []domain.Obligation) map[int][]string {
	peers := make(map[int][]string)
	for _, c := range FindAmountConflicts(obligations) {
		for _, i := range c.indexes {
			for _, j := range c.indexes {
				if i != j {
					peers[i] = append(peers[i], obligations[j].ID)
				}
			}
		}
	}
	return peers
}
