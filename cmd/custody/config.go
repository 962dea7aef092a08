package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the custody CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  urlKey,
					Usage: "custodyd REST interface url",
					Value: defaultURL,
				},
				&cli.StringFlag{
					Name:  identityKey,
					Usage: "base58 address used when an identity flag is omitted",
				},
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		// never print the private key
		if key == identityPrvKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(ctx.App.Writer, key+": "+state[key])
	}

	return nil
}

func configInitAction(ctx *cli.Context) error {
	data := map[string]string{urlKey: ctx.String(urlKey)}
	if identity := ctx.String(identityKey); identity != "" {
		data[identityKey] = identity
	}
	return setState(data)
}

func configSetAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := ctx.Args().Get(0)
	value := ctx.Args().Get(1)
	if key == identityPrvKey {
		return fmt.Errorf("%s cannot be set manually, use 'custody keygen'", key)
	}

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "%s %s has been set\n", key, value)
	return nil
}
