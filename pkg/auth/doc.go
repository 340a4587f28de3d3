// Package auth contains the built-in authenticator helpers. Each helper
// implements one challenge scheme and declares through its descriptor
// flags whether it can produce credentials (client side), verify them
// (server side), or both.
package auth
