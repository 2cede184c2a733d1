package entity

// User is the account shell owning orders and worker profiles.
// Authentication lives outside this service.
type User struct {
	ID        uint64
	Username  string
	Email     string
	FirstName string
	LastName  string
}
