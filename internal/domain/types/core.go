package types

import "strconv"

// ProductID identifies a product in the restaurant catalog.
type ProductID int64

// String returns the decimal form of the identifier.
func (id ProductID) String() string { return strconv.FormatInt(int64(id), 10) }

// AddOnID identifies an add-on ("additional") offered with products.
type AddOnID int64

// String returns the decimal form of the identifier.
func (id AddOnID) String() string { return strconv.FormatInt(int64(id), 10) }

// CategoryID identifies a menu category.
type CategoryID int64

// ClientID identifies an end customer account.
type ClientID int64

// String returns the decimal form of the identifier.
func (id ClientID) String() string { return strconv.FormatInt(int64(id), 10) }

// RestaurantID identifies the restaurant (owner) account.
type RestaurantID int64

// String returns the decimal form of the identifier.
func (id RestaurantID) String() string { return strconv.FormatInt(int64(id), 10) }

// OrderID identifies a stored order.
type OrderID int64

// String returns the decimal form of the identifier.
func (id OrderID) String() string { return strconv.FormatInt(int64(id), 10) }

// Username is the public slug of a restaurant, as used in its menu URL.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }
