package entity

type Transport struct {
	ID            uint64
	TransportType TransportType
	Number        string
	CompanyID     uint64
}

type TransportType string

const (
	CAR   TransportType = "CAR"
	TRAIN TransportType = "TRAIN"
	PLANE TransportType = "PLANE"
	SHIP  TransportType = "SHIP"
)

func ValidTransportTypes() []string {
	return []string{
		string(CAR),
		string(TRAIN),
		string(PLANE),
		string(SHIP),
	}
}

func IsValidTransportType(t string) bool {
	for _, validType := range ValidTransportTypes() {
		if validType == t {
			return true
		}
	}
	return false
}
