package domain

// Caller is the verified identity of a frontend client, extracted from
// its bearer token by the identity provider.
type Caller struct {
	// Subject is the stable user identifier issued by the provider.
	Subject string

	// Email is the verified email address, when present in the token.
	Email string

	// Name is the display name, when present in the token.
	Name string
}
