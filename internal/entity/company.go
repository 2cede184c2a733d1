package entity

type Company struct {
	ID   uint64
	Name string
	Info string
}

// WorkerProfile is a staff member of a transport company.
type WorkerProfile struct {
	ID        uint64
	UserID    uint64
	CompanyID uint64
	Position  string
}
