package domain

import (
	interfaces "cardapio/internal/domain/interfaces"
	types "cardapio/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ProductID            = types.ProductID
	AddOnID              = types.AddOnID
	CategoryID           = types.CategoryID
	ClientID             = types.ClientID
	RestaurantID         = types.RestaurantID
	OrderID              = types.OrderID
	Username             = types.Username
	AddOn                = types.AddOn
	Product              = types.Product
	Category             = types.Category
	OperatingHour        = types.OperatingHour
	Restaurant           = types.Restaurant
	RestaurantRef        = types.RestaurantRef
	Address              = types.Address
	Client               = types.Client
	Credentials          = types.Credentials
	Registration         = types.Registration
	OrderSubmission      = types.OrderSubmission
	OrderItemSubmission  = types.OrderItemSubmission
	OrderAddOnSubmission = types.OrderAddOnSubmission
	Order                = types.Order
	OrderItem            = types.OrderItem
	OrderItemAddOn       = types.OrderItemAddOn
)

// OrderStatusPending is the status new orders are submitted with.
const OrderStatusPending = types.OrderStatusPending

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CatalogAPI          = interfaces.CatalogAPI
	ClientAPI           = interfaces.ClientAPI
	OrderAPI            = interfaces.OrderAPI
	RestaurantAPI       = interfaces.RestaurantAPI
	KeyValueStore       = interfaces.KeyValueStore
	ClientSource        = interfaces.ClientSource
	RestaurantSource    = interfaces.RestaurantSource
	SessionService      = interfaces.SessionService
	OrderHistoryService = interfaces.OrderHistoryService
)
