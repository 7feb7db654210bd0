// Package application wires the resolved settings into the Telegram client and
// the command bot, keeping the main package focused on startup and shutdown.
package application
