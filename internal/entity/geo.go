package entity

type Country struct {
	ID   uint64
	Name string
}

type City struct {
	ID        uint64
	Name      string
	CountryID uint64
}

type Warehouse struct {
	ID        uint64
	Address   string
	CompanyID uint64
	CityID    uint64
}
