package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"passkeeper/internal/common"
)

const passwordRequirements = "Password must be at least 8 characters long and contain an uppercase letter, a lowercase letter, a digit and one of @#$%^&+=!"

// readNewPassword reads a password twice and verifies both entries match.
// Both buffers are wiped except the returned one, which the caller owns.
func (a *App) readNewPassword(prompt string) ([]byte, error) {
	password, err := GetPassword(prompt, a.out)
	if err != nil {
		return nil, err
	}

	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		common.WipeByteArray(password)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		common.WipeByteArray(password)
		return nil, common.ErrPasswordMismatch
	}
	return password, nil
}

func (a *App) register(ctx context.Context) {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintln(a.out, passwordRequirements)
	password, err := a.readNewPassword("Enter master password")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(password)

	if err := a.vault.CreateUser(ctx, userName, string(password)); err != nil {
		switch {
		case errors.Is(err, common.ErrUserAlreadyExists):
			fmt.Fprintln(a.out, "User already exists")
		case errors.Is(err, common.ErrWeakPassword):
			fmt.Fprintln(a.out, passwordRequirements)
		case errors.Is(err, common.ErrInvalidUsername):
			fmt.Fprintln(a.out, "Invalid user name")
		default:
			fmt.Fprintln(a.out, err.Error())
		}
		return
	}

	fmt.Fprintln(a.out, "User created, you can login now")
}

func (a *App) login(ctx context.Context) {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	password, err := GetPassword("Enter master password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(password)

	if !a.vault.Authenticate(ctx, userName, string(password)) {
		fmt.Fprintln(a.out, "Authentication failed")
		return
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Welcome,", userName)
}

func (a *App) logout() {
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
}
