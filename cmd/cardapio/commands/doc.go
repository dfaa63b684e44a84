// Package commands defines the cardapio CLI and wires dependencies for subcommands.
//
// Commands
//
//   - menu [username]        Show a restaurant's menu and remember the restaurant
//   - restaurant [username]  Show the restaurant profile and opening hours
//   - register               Create a client account at the current restaurant
//   - login / logout         Start or end the client session
//   - whoami                 Print the logged-in client
//   - cart add|remove|show|clear
//   - checkout               Place the cart as an order
//   - orders                 List past orders
//
// # Implementation
//
// The root command loads settings from the environment (and .env), applies
// flag overrides, and builds the dependency graph (store, API client,
// services) before any subcommand runs. The cart is stored between
// invocations, scoped to the restaurant it was filled at.
package commands
