package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Ask the bank for its protocol versions (HEV)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := appCtx.session(ctx)
			if err != nil {
				return err
			}
			user, err := appCtx.client.FetchVersions(ctx, session)
			if err != nil {
				return err
			}
			if err := appCtx.registry.SaveBank(ctx, user.Bank()); err != nil {
				return err
			}
			for _, v := range user.Bank().Versions {
				mark := ""
				if !v.Known() {
					mark = " (unknown)"
				}
				fmt.Fprintf(appCtx.out, "%s%s\n", v, mark)
			}
			return nil
		},
	}
}

func orderTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ordertypes",
		Short: "Ask the bank for the order types available to the user (HAA)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := appCtx.session(ctx)
			if err != nil {
				return err
			}
			user, err := appCtx.client.FetchOrderTypes(ctx, session)
			if err != nil {
				return err
			}
			if err := appCtx.registry.SaveBank(ctx, user.Bank()); err != nil {
				return err
			}
			for _, ot := range user.Bank().OrderTypes {
				fmt.Fprintf(appCtx.out, "%s\t%s\t%s\n", ot, ot.Transmission(), ot.Description())
			}
			return nil
		},
	}
}
