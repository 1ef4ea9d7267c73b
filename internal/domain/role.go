package domain

// Roles carried in the bearer token. Only admin unlocks the unscoped listing.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
