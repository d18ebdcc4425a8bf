// Package commands defines the ebicsctl CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - create-user   Generate keys for a new subscriber at a bank
//   - users         List stored subscribers
//   - ini, hia      Register the signature, authentication and encryption keys
//   - hpb           Fetch the bank keys
//   - letter        Print the key digests for the initialisation letters
//   - spr           Suspend the subscriber
//   - versions      Ask the bank for supported protocol versions (HEV)
//   - ordertypes    Ask the bank for supported order types (HAA)
//   - upload        Send a file with an upload order type
//   - download      Fetch order data with a download order type
//
// # Implementation
//
// The root command loads the YAML configuration, opens the record store and
// builds an EBICS client before any subcommand runs. Private keys are sealed
// with a passphrase read from the environment variable named in the
// configuration.
package commands
