// Package main runs the in-memory restaurant service used by cardapio during
// development and tests. It seeds the "burgerhouse" restaurant with a small
// menu and a demo client (demo@cardapio.test / demo1234).
//
// HTTP API
//
//	GET /{username}/
//	    Return the restaurant profile, including operating hours.
//
//	GET /{username}/categories
//	    Return the menu as categories of products with their add-ons.
//
//	POST /{username}/client/login { "email", "password" }
//	    Return the client on 200, or 401 with {"message": ...}.
//
//	POST /client { "name", "email", "password", "address", "user": {"id"} }
//	    Create a client of the restaurant named by user.id.
//
//	POST /order
//	    Store a PENDING order and return it with computed totals.
//
//	GET /client/{clientId}/orders
//	    Return the client's orders, newest first. No orders is an empty body.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Non-2xx statuses carry {"message": ...}.
//   - Each request is logged with method, path, status and duration.
//   - The listen address is CARDAPIO_MOCKAPI_ADDR, default :8080.
package main
