package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	networkFlag = cli.StringFlag{
		Name:    "network",
		Usage:   "id of the network the wallet operates on",
		Value:   "undeployed",
		EnvVars: []string{"MENTOR_NETWORK_ID"},
	}
	indexerUrlFlag = cli.StringFlag{
		Name:    "indexer-url",
		Usage:   "GraphQL endpoint of the ledger indexer",
		Value:   "http://127.0.0.1:8088/api/v3/graphql",
		EnvVars: []string{"MENTOR_INDEXER_URL"},
	}
	nodeUrlFlag = cli.StringFlag{
		Name:    "node-url",
		Usage:   "websocket RPC endpoint of the node",
		Value:   "ws://127.0.0.1:9944",
		EnvVars: []string{"MENTOR_NODE_URL"},
	}
	feeFlag = cli.Uint64Flag{
		Name:    "fee",
		Usage:   "flat fee paid by every transaction, in native token units",
		Value:   1000,
		EnvVars: []string{"MENTOR_FEE"},
	}
	seedFlag = cli.StringFlag{
		Name:    "seed",
		Usage:   "hex encoded wallet seed",
		EnvVars: []string{"MENTOR_WALLET_SEED"},
	}
	mnemonicFlag = cli.StringFlag{
		Name:  "mnemonic",
		Usage: "space separated mnemonic, alternative to --seed",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "hex encoded token type, defaults to the native token",
	}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "mentorwallet"
	app.Usage = "Command line interface to manage a mentorship wallet"
	app.Flags = []cli.Flag{
		&networkFlag,
		&indexerUrlFlag,
		&nodeUrlFlag,
		&feeFlag,
	}
	app.Commands = append(
		app.Commands,
		&genseed,
		&address,
		&balance,
		&fund,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func printJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	fmt.Println(string(jsonBytes))
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
		_, _ = fmt.Fprintf(os.Stderr, "[mentorwallet] %v\n", err)
	}
	os.Exit(1)
}
