package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-ebics/pkg/ebics"
	"github.com/sirosfoundation/go-ebics/pkg/keys"
)

type keyOp func(*ebics.Client, context.Context, *ebics.Session) (*ebics.User, error)

// keyOperation runs op for the selected user and stores the returned user.
func keyOperation(use, short string, op keyOp, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := appCtx.session(ctx)
			if err != nil {
				return err
			}
			user, err := op(appCtx.client, ctx, session)
			if err != nil {
				return err
			}
			if err := appCtx.registry.SaveUser(ctx, user); err != nil {
				return err
			}
			fmt.Fprintln(appCtx.out, done)
			return nil
		},
	}
}

func iniCmd() *cobra.Command {
	return keyOperation("ini", "Register the signature key (INI)",
		(*ebics.Client).SendINI,
		"Signature key registered.")
}

func hiaCmd() *cobra.Command {
	return keyOperation("hia", "Register the authentication and encryption keys (HIA)",
		(*ebics.Client).SendHIA,
		"Authentication and encryption keys registered.")
}

func hpbCmd() *cobra.Command {
	return keyOperation("hpb", "Fetch the bank keys (HPB)",
		(*ebics.Client).SendHPB,
		"Bank keys stored. Compare them with the digests published by your bank.")
}

func sprCmd() *cobra.Command {
	return keyOperation("spr", "Suspend the subscriber (SPR)",
		(*ebics.Client).Revoke,
		"Subscriber suspended.")
}

// letterCmd prints the SHA-256 digests that go on the INI and HIA letters,
// and the bank digests once HPB has run.
func letterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "letter",
		Short: "Print key digests for the initialisation letters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			user, err := appCtx.registry.LoadUser(cmd.Context(), userID, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(appCtx.out, "Host ID:    %s\nPartner ID: %s\nUser ID:    %s\n",
				user.Bank().HostID, user.Partner.PartnerID, user.UserID)
			printDigest("Signature key", user.SignatureKey)
			printDigest("Authentication key", user.AuthenticationKey)
			printDigest("Encryption key", user.EncryptionKey)
			if bank := user.Bank(); bank.HasKeys() {
				printDigest("Bank authentication key", bank.AuthenticationKey)
				printDigest("Bank encryption key", bank.EncryptionKey)
			}
			return nil
		},
	}
}

func printDigest(label string, k *keys.Key) {
	if k == nil {
		return
	}
	fmt.Fprintf(appCtx.out, "\n%s (%s, created %s):\n%s\n",
		label, k.Version(), k.Created().Format("2006-01-02"), keys.FormatDigest(k.Digest()))
}
