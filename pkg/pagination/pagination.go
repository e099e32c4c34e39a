package pagination

const (
	// DefaultLimit is the standard ledger page size when a limit is not provided.
	DefaultLimit = 50
	// MaxLimit caps how many rows any ledger page can request.
	MaxLimit = 500
)

// Params holds limit/offset pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Offset int
}

// NormalizeLimit clamps the limit to [1, MaxLimit]. The absent-parameter
// default is a controller concern; an explicit zero or negative limit asks
// for the smallest page, not the default one.
func NormalizeLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeOffset clamps the offset to be non-negative.
func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// Normalize clamps both components of the provided params.
func Normalize(p Params) Params {
	return Params{
		Limit:  NormalizeLimit(p.Limit),
		Offset: NormalizeOffset(p.Offset),
	}
}
