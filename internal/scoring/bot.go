package scoring

import (
	"sort"

	"github.com/Veraticus/walletscore/internal/model"
)

// BotRepeatThreshold is the number of identical-amount transactions a wallet
// may issue before it is flagged. Flagging requires strictly more.
const BotRepeatThreshold = 10

// BotFlags is the set of wallets flagged as bot-like, mapped to the highest
// repetition count observed for a single amount.
type BotFlags map[string]int

// Has reports whether wallet is flagged.
func (b BotFlags) Has(wallet string) bool {
	_, ok := b[wallet]
	return ok
}

// Wallets returns the flagged wallet ids in sorted order.
func (b BotFlags) Wallets() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type amountKey struct {
	wallet string
	amount string
}

// DetectBots groups records by wallet and exact amount, ignoring category,
// and flags every wallet with a group larger than BotRepeatThreshold.
// Amounts compare by value, so 50 and 50.00 fall in the same group.
func DetectBots(records []model.TransactionRecord) BotFlags {
	counts := make(map[amountKey]int)
	for _, rec := range records {
		if rec.WalletID == "" {
			continue
		}
		counts[amountKey{wallet: rec.WalletID, amount: rec.Amount.String()}]++
	}

	flags := make(BotFlags)
	for key, n := range counts {
		if n <= BotRepeatThreshold {
			continue
		}
		if n > flags[key.wallet] {
			flags[key.wallet] = n
		}
	}
	return flags
}
