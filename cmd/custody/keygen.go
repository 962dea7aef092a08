package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/urfave/cli/v2"
)

var keygen = cli.Command{
	Name:  "keygen",
	Usage: "generate a new ed25519 identity and make it the default one",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "print-only",
			Usage: "print the new identity without storing it",
		},
	},
	Action: keygenAction,
}

func keygenAction(ctx *cli.Context) error {
	pubkey, prvkey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	addr, err := address.NewFromPublicKey(pubkey)
	if err != nil {
		return err
	}

	if !ctx.Bool("print-only") {
		if err := setState(map[string]string{
			identityKey:    addr.String(),
			identityPrvKey: hex.EncodeToString(prvkey),
		}); err != nil {
			return err
		}
	}

	fmt.Fprintln(ctx.App.Writer, addr.String())
	return nil
}
