package enums

// TxnType distinguishes the two stock movement directions.
type TxnType string

const (
	TxnCheckin  TxnType = "checkin"
	TxnCheckout TxnType = "checkout"
)

func (t TxnType) IsValid() bool {
	switch t {
	case TxnCheckin, TxnCheckout:
		return true
	}
	return false
}
