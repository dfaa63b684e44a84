package types

// Address is the delivery address shared by clients and restaurants.
type Address struct {
	Street         string `json:"street" validate:"required"`
	Number         string `json:"number" validate:"required"`
	Neighborhood   string `json:"neighborhood" validate:"required"`
	City           string `json:"city" validate:"required"`
	PostalCode     string `json:"postalCode" validate:"required"`
	ReferencePoint string `json:"referencePoint"`
}

// Client is the authenticated end customer.
type Client struct {
	ID      ClientID `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address Address  `json:"address"`
}

// Credentials are what the login endpoint accepts.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the input for creating a client account.
type Registration struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=4"`
	Address  Address `json:"address" validate:"required"`
}
