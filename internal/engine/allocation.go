package engine

// DoubleShelfFactor models two-sided shelving on every usable square metre.
const DoubleShelfFactor = 2.0

// Shares is the fraction of shelf capacity given to each storage line.
// The remainder (1 - Sum) is unallocated and earns nothing.
type Shares struct {
	Storage   float64 `json:"storage_share" yaml:"storage_share"`
	Loan      float64 `json:"loan_share" yaml:"loan_share"`
	VIP       float64 `json:"vip_share" yaml:"vip_share"`
	ShortTerm float64 `json:"short_term_share" yaml:"short_term_share"`
}

// Sum returns the total allocated fraction
func (s Shares) Sum() float64 {
	return s.Storage + s.Loan + s.VIP + s.ShortTerm
}

// Remaining returns the unallocated fraction clamped to [0, 1]
func (s Shares) Remaining() float64 {
	r := 1.0 - s.Sum()
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Areas holds the shelf area (m²) assigned to each storage line
type Areas struct {
	Storage   float64 `json:"storage_area"`
	Loan      float64 `json:"loan_area"`
	VIP       float64 `json:"vip_area"`
	ShortTerm float64 `json:"short_term_area"`
}

// Total returns the sum of all line areas
func (a Areas) Total() float64 {
	return a.Storage + a.Loan + a.VIP + a.ShortTerm
}

// Densities holds items stored per m² for each line
type Densities struct {
	Storage   float64 `json:"storage_items_density" yaml:"storage_items_density"`
	Loan      float64 `json:"loan_items_density" yaml:"loan_items_density"`
	VIP       float64 `json:"vip_items_density" yaml:"vip_items_density"`
	ShortTerm float64 `json:"short_term_items_density" yaml:"short_term_items_density"`
}

// Items holds the number of stored items per line
type Items struct {
	Storage   float64 `json:"stored_items"`
	Loan      float64 `json:"total_items_loan"`
	VIP       float64 `json:"vip_stored_items"`
	ShortTerm float64 `json:"short_term_stored_items"`
}

// Capacity returns the total shelf area available for allocation:
// usable floor area times the double-shelf factor times shelves per m².
func Capacity(totalArea, usefulAreaRatio, shelvesPerM2 float64) float64 {
	usable := totalArea * usefulAreaRatio
	return usable * DoubleShelfFactor * shelvesPerM2
}

// Allocate splits the warehouse shelf capacity between the storage lines.
// Shares are used as given; a sum above 1 over-allocates.
func Allocate(totalArea, usefulAreaRatio, shelvesPerM2 float64, shares Shares) Areas {
	capacity := Capacity(totalArea, usefulAreaRatio, shelvesPerM2)
	return Areas{
		Storage:   capacity * shares.Storage,
		Loan:      capacity * shares.Loan,
		VIP:       capacity * shares.VIP,
		ShortTerm: capacity * shares.ShortTerm,
	}
}

// CountItems converts line areas into item counts
func CountItems(a Areas, d Densities) Items {
	return Items{
		Storage:   a.Storage * d.Storage,
		Loan:      a.Loan * d.Loan,
		VIP:       a.VIP * d.VIP,
		ShortTerm: a.ShortTerm * d.ShortTerm,
	}
}
