package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-ebics/pkg/ebics"
	"github.com/sirosfoundation/go-ebics/pkg/keys"
)

func createUserCmd() *cobra.Command {
	var (
		hostID, url, bankName, country string
		partnerID, name, sigVersion    string
		medium                         string
	)
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Generate keys for a new subscriber and store them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			secrets, err := appCtx.secrets()
			if err != nil {
				return err
			}
			version, err := keys.ParseVersion(sigVersion)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			// keep keys and metadata of a bank that is already known
			bank, err := appCtx.registry.LoadBank(ctx, hostID)
			if err != nil {
				bank = ebics.Bank{HostID: hostID}
			}
			bank.URL = url
			if bankName != "" {
				bank.Name = bankName
			}
			if country != "" {
				bank.Country = country
			}

			user, err := ebics.NewUser(bank, partnerID, userID, name, version)
			if err != nil {
				return err
			}
			if medium != "" {
				user.SecurityMedium = medium
			}
			if err := appCtx.registry.SaveUser(ctx, user.WithSecrets(secrets)); err != nil {
				return err
			}
			fmt.Fprintf(appCtx.out, "User %s created for partner %s at %s.\n", userID, partnerID, hostID)
			fmt.Fprintln(appCtx.out, "Next: run ini and hia, then send the letter to your bank.")
			return nil
		},
	}
	cmd.Flags().StringVar(&hostID, "host", "", "bank host id")
	cmd.Flags().StringVar(&url, "url", "", "bank EBICS endpoint URL")
	cmd.Flags().StringVar(&bankName, "bank-name", "", "bank display name")
	cmd.Flags().StringVar(&country, "country", "", "bank country code (ISO 3166)")
	cmd.Flags().StringVar(&partnerID, "partner", "", "partner id")
	cmd.Flags().StringVar(&name, "name", "", "subscriber name")
	cmd.Flags().StringVar(&sigVersion, "signature-version", string(keys.A006), "signature key version (A005 or A006)")
	cmd.Flags().StringVar(&medium, "security-medium", "", "security medium code")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("partner")
	return cmd
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List stored subscribers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := appCtx.registry.Users(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				user, err := appCtx.registry.LoadUser(cmd.Context(), id, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(appCtx.out, "%s\t%s\t%s\tINI=%t HIA=%t HPB=%t\n",
					user.UserID, user.Partner.PartnerID, user.Bank().HostID,
					user.SignatureKeyRegistered, user.AuthEncKeysRegistered, user.Bank().HasKeys())
			}
			return nil
		},
	}
}
