package domain

const (
	DefaultCustomerCity    = "New York"
	DefaultCustomerState   = "NY"
	DefaultCustomerCountry = "United States"
	DefaultCustomerZipCode = "10001"
)

type Address struct {
	Line1   string
	City    string
	State   string
	Country string
	ZipCode string
}

type Customer struct {
	ID      string
	Name    string
	Phone   string
	Address Address
}

// DefaultAddress fills everything but line1 with the documented defaults.
func DefaultAddress(line1 string) Address {
	return Address{
		Line1:   line1,
		City:    DefaultCustomerCity,
		State:   DefaultCustomerState,
		Country: DefaultCustomerCountry,
		ZipCode: DefaultCustomerZipCode,
	}
}
