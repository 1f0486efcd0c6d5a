package domain

// Identity is a verified caller identity, derived from a credential per
// request and never persisted.
type Identity struct {
	UID   string
	Email string
}

// Audience selects which display rules apply to a listing.
type Audience int

const (
	AudiencePublic Audience = iota
	AudienceAdmin
)
