// Package catalog holds the read-only university reference data. The
// catalog is owned by an external collaborator; the core only reads it.
package catalog

// University is one catalog record.
type University struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Country        string   `json:"country"`
	TuitionFee     int      `json:"tuition_fee"`
	LivingCost     int      `json:"living_cost"`
	AcceptanceRate float64  `json:"acceptance_rate"`
	Ranking        int      `json:"ranking"`
	Programs       []string `json:"programs"`
}

// Catalog records occasionally miss cost figures; these stand in so cost
// estimates stay comparable.
const (
	DefaultTuitionFee = 30000
	DefaultLivingCost = 15000
)

// Tuition returns the tuition fee, substituting the default when unset.
func (u University) Tuition() int {
	if u.TuitionFee <= 0 {
		return DefaultTuitionFee
	}
	return u.TuitionFee
}

// Living returns the living cost, substituting the default when unset.
func (u University) Living() int {
	if u.LivingCost <= 0 {
		return DefaultLivingCost
	}
	return u.LivingCost
}
