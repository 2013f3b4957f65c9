package cli

import (
	"context"
	"errors"
	"fmt"

	"passkeeper/internal/common"
)

func (a *App) changeMasterPassword(ctx context.Context) {
	fmt.Fprintln(a.out, passwordRequirements)

	password, err := a.readNewPassword("Enter new master password")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(password)

	if err := a.vault.ChangeMasterPassword(ctx, a.userName, string(password)); err != nil {
		if errors.Is(err, common.ErrWeakPassword) {
			fmt.Fprintln(a.out, passwordRequirements)
			return
		}
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Master password changed")
}

func (a *App) deleteUser(ctx context.Context) {
	ok, err := GetConfirmation(a.reader, "Delete your vault and every entry in it? This cannot be undone.", a.out)
	if err != nil || !ok {
		return
	}

	if err := a.vault.DeleteUser(ctx, a.userName); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	a.userName = ""
	fmt.Fprintln(a.out, "Vault deleted")
}
