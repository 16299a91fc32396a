package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/dappmarket/marketplace-ledger/internal/config"
	"github.com/dappmarket/marketplace-ledger/internal/dev"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var client *retryablehttp.Client

func main() {
	config.Init("cli")

	client = retryablehttp.NewClient()
	client.Logger = nil

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "mint",
				Usage:  "Mint a new token",
				Action: mint,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "minter", Required: true, Usage: "Account the token is minted to"},
					&cli.StringFlag{Name: "uri", Required: true, Usage: "Token metadata URI"},
				},
			},
			{
				Name:   "approve",
				Usage:  "Grant or revoke the market's standing transfer approval",
				Action: approve,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Required: true},
					&cli.StringFlag{Name: "operator", Value: "", Usage: "Defaults to the market account"},
					&cli.BoolFlag{Name: "revoke", Usage: "Revoke instead of grant"},
				},
			},
			{
				Name:   "deposit",
				Usage:  "Credit an account balance",
				Action: deposit,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "account", Required: true},
					&cli.Uint64Flag{Name: "amount", Required: true},
				},
			},
			{
				Name:   "list",
				Usage:  "List a token for sale",
				Action: list,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "seller", Required: true},
					&cli.Uint64Flag{Name: "token", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
				},
			},
			{
				Name:   "buy",
				Usage:  "Purchase a listed item",
				Action: buy,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "buyer", Required: true},
					&cli.Uint64Flag{Name: "item", Required: true},
					&cli.Uint64Flag{Name: "payment", Required: true},
				},
			},
			{
				Name:      "item",
				Usage:     "Show a listing",
				Action:    item,
				ArgsUsage: "<listingId>",
			},
			{
				Name:      "token",
				Usage:     "Show a token",
				Action:    token,
				ArgsUsage: "<tokenId>",
			},
			{
				Name:      "balance",
				Usage:     "Show an account balance",
				Action:    balance,
				ArgsUsage: "<account>",
			},
			{
				Name:   "stats",
				Usage:  "Show marketplace counters and configuration",
				Action: stats,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func mint(c *cli.Context) error {
	return post("/tokens", map[string]interface{}{
		"minter": c.String("minter"),
		"uri":    c.String("uri"),
	})
}

func approve(c *cli.Context) error {
	operator := c.String("operator")
	if operator == "" {
		operator = config.Get().MarketAccount
	}

	return post("/approvals", map[string]interface{}{
		"owner":    c.String("owner"),
		"operator": operator,
		"approved": !c.Bool("revoke"),
	})
}

func deposit(c *cli.Context) error {
	return post(fmt.Sprintf("/accounts/%s/deposit", c.String("account")), map[string]interface{}{
		"amount": c.Uint64("amount"),
	})
}

func list(c *cli.Context) error {
	return post("/items", map[string]interface{}{
		"seller":  c.String("seller"),
		"tokenId": c.Uint64("token"),
		"price":   c.Uint64("price"),
	})
}

func buy(c *cli.Context) error {
	return post(fmt.Sprintf("/items/%d/purchase", c.Uint64("item")), map[string]interface{}{
		"buyer":   c.String("buyer"),
		"payment": c.Uint64("payment"),
	})
}

func item(c *cli.Context) error {
	return get("/items/" + c.Args().First())
}

func token(c *cli.Context) error {
	return get("/tokens/" + c.Args().First())
}

func balance(c *cli.Context) error {
	return get(fmt.Sprintf("/accounts/%s/balance", c.Args().First()))
}

func stats(c *cli.Context) error {
	return get("/stats")
}

func post(path string, body map[string]interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	dev.Dump(body)

	resp, err := client.Post(config.Get().ApiUrl+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	return printResponse(resp.StatusCode, resp.Body)
}

func get(path string) error {
	resp, err := client.Get(config.Get().ApiUrl + path)
	if err != nil {
		return err
	}

	return printResponse(resp.StatusCode, resp.Body)
}

func printResponse(status int, body io.ReadCloser) error {
	defer body.Close()

	b, err := ioutil.ReadAll(body)
	if err != nil {
		return err
	}

	if status >= 400 {
		return cli.Exit(fmt.Sprintf("%d: %s", status, string(b)), 1)
	}

	fmt.Println(string(b))

	return nil
}
