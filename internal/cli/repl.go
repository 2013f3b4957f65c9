package cli

import (
	"context"
	"fmt"
	"strings"
)

// Run starts a read-eval-print loop over standard input.
//
// The command set depends on the session stage:
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create a vault
//	  - login          open a vault
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help           show available commands
//	  - add            add a credential entry
//	  - list           list entries with decrypted secrets
//	  - update         update an entry by service name
//	  - delete         delete an entry by service name
//	  - passwd         change the master password
//	  - deluser        delete the vault and every entry in it
//	  - logout         close the session
//	  - exit | quit    leave the program
//
// Errors returned by command handlers are rendered by the handlers
// themselves; the loop only dispatches.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "passkeeper (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "passkeeper %s> ", a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: add, list, update, delete, passwd, deluser, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}

		case "register":
			a.register(ctx)

		case "login":
			a.login(ctx)

		case "add":
			a.requireLogin(func() { a.addEntry(ctx) })

		case "l", "list":
			a.requireLogin(func() { a.listEntries(ctx) })

		case "update":
			a.requireLogin(func() { a.updateEntry(ctx) })

		case "delete":
			a.requireLogin(func() { a.deleteEntry(ctx) })

		case "passwd":
			a.requireLogin(func() { a.changeMasterPassword(ctx) })

		case "deluser":
			a.requireLogin(func() { a.deleteUser(ctx) })

		case "logout":
			a.logout()

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) prompt() string {
	if a.isLoggedIn() {
		return a.userName + " "
	}
	return ""
}

func (a *App) requireLogin(fn func()) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return
	}
	fn()
}
