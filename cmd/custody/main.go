package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/tdex-custody/pkg/client"
	"github.com/urfave/cli/v2"
)

const (
	urlKey         = "url"
	identityKey    = "identity"
	identityPrvKey = "identity_key"

	defaultURL = "http://localhost:9945"
)

var (
	custodyDataDir = btcutil.AppDataDir("custody-cli", false)
	statePath      = filepath.Join(custodyDataDir, "state.json")
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "custody"
	app.Usage = "Command line interface for custodyd users"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&keygen,
		&airdrop,
		&mint,
		&account,
		&balance,
		&escrow,
		&marketplace,
		&settlements,
		&webhook,
	)
	return app
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("get config state error: %w", err)
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("get config state error: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(statePath), os.ModeDir|0755); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0600); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func printRespJSON(ctx *cli.Context, resp interface{}) error {
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "\t")
	return enc.Encode(resp)
}

func getClient() (*client.Client, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	url, ok := state[urlKey]
	if !ok {
		url = defaultURL
	}
	return client.New(url)
}

// identityOrDefault returns the value of the given flag or, if not set, the
// identity stored in the local state.
func identityOrDefault(ctx *cli.Context, flag string) (string, error) {
	if v := ctx.String(flag); v != "" {
		return v, nil
	}
	state, err := getState()
	if err != nil {
		return "", err
	}
	identity, ok := state[identityKey]
	if !ok {
		return "", fmt.Errorf(
			"missing --%s, either pass it or run 'custody keygen'", flag,
		)
	}
	return identity, nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[custody] %v\n", err)
	}
	os.Exit(1)
}
