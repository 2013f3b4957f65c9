package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"passkeeper/internal/common"
)

func (a *App) addEntry(ctx context.Context) {
	service, err := GetSimpleText(a.reader, "Enter service name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	exists, err := a.vault.EntryExists(ctx, a.userName, service)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if exists {
		ok, err := GetConfirmation(a.reader, "An entry for this service already exists. Add another?", a.out)
		if err != nil || !ok {
			return
		}
	}

	login, err := GetSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	secret, err := GetPassword("Enter secret", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(secret)

	if err := a.vault.AddEntry(ctx, a.userName, service, login, string(secret)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Entry added")
}

func (a *App) listEntries(ctx context.Context) {
	views, err := a.vault.ListEntries(ctx, a.userName)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No entries yet")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tLOGIN\tSECRET")
	for _, v := range views {
		secret := v.Secret
		if v.Err != nil {
			secret = "<unreadable>"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Service, v.Login, secret)
	}
	w.Flush()
}

func (a *App) updateEntry(ctx context.Context) {
	service, err := GetSimpleText(a.reader, "Enter service name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	login, err := GetSimpleText(a.reader, "Enter new login", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	secret, err := GetPassword("Enter new secret", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(secret)

	updated, err := a.vault.UpdateEntry(ctx, a.userName, service, login, string(secret))
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if !updated {
		fmt.Fprintln(a.out, "No entry found for service", service)
		return
	}
	fmt.Fprintln(a.out, "Entry updated")
}

func (a *App) deleteEntry(ctx context.Context) {
	service, err := GetSimpleText(a.reader, "Enter service name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	ok, err := GetConfirmation(a.reader, "Delete the entry for "+service+"?", a.out)
	if err != nil || !ok {
		return
	}

	deleted, err := a.vault.DeleteEntry(ctx, a.userName, service)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if !deleted {
		fmt.Fprintln(a.out, "No entry found for service", service)
		return
	}
	fmt.Fprintln(a.out, "Entry deleted")
}
