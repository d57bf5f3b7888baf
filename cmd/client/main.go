// Command client is a small CLI for the ledger server. It talks to the REST
// API through internal/adapter and prints results as JSON.
//
// Usage:
//
//	client [flags] <command> [args]
//
// Commands:
//
//	register <login> <password>       create an account, print the token
//	login    <login> <password>       authenticate, print the token
//	submit   <savings_ct> <spending_ct> <preference_ct>
//	                                  submit an encrypted record
//	get      <record-id>              fetch a record's plaintext projection
//	list                              list the caller's records
//	labels                            list revealed preference labels
//	decrypt-record <record-id>        schedule a record decryption
//	decrypt-count  <label>            schedule an aggregate count decryption
//	cancel   <request-id>             reclaim a stalled decryption request
//
// Authenticated commands read the bearer token from -token or the
// LEDGER_TOKEN environment variable.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/dkhalitov/go-cipher-ledger/internal/adapter"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewConsoleLogger("ledger-client")

	serverURL := flag.String("s", "http://localhost:8080", "ledger server base URL")
	token := flag.String("token", os.Getenv("LEDGER_TOKEN"), "bearer token for authenticated commands")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal().Msg("no command given, see package doc for usage")
	}

	client := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{BaseURL: *serverURL})
	if *token != "" {
		client.SetToken(*token)
	}

	ctx := context.Background()

	if err := run(ctx, client, args[0], args[1:]); err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("command failed")
	}
}

func run(ctx context.Context, client adapter.ServerAdapter, command string, args []string) error {
	switch command {
	case "register":
		if len(args) != 2 {
			return fmt.Errorf("usage: register <login> <password>")
		}
		user, err := client.Register(ctx, models.User{Login: args[0], AuthHash: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("registered %q (id %d)\ntoken: %s\n", user.Login, user.UserID, client.Token())
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <login> <password>")
		}
		if _, err := client.Login(ctx, models.User{Login: args[0], AuthHash: args[1]}); err != nil {
			return err
		}
		fmt.Printf("token: %s\n", client.Token())
		return nil

	case "submit":
		if len(args) != 3 {
			return fmt.Errorf("usage: submit <savings_ct> <spending_ct> <preference_ct>")
		}
		id, err := client.Submit(ctx, models.SubmitRequest{
			Savings:    models.CiphertextHandle(args[0]),
			Spending:   models.CiphertextHandle(args[1]),
			Preference: models.CiphertextHandle(args[2]),
		})
		if err != nil {
			return err
		}
		fmt.Printf("record id: %d\n", id)
		return nil

	case "get":
		recordID, err := parseRecordID(args, "get <record-id>")
		if err != nil {
			return err
		}
		revealed, err := client.GetRevealed(ctx, recordID)
		if err != nil {
			return err
		}
		return printJSON(revealed)

	case "list":
		items, err := client.ListRecords(ctx)
		if err != nil {
			return err
		}
		return printJSON(items)

	case "labels":
		labels, err := client.ListLabels(ctx)
		if err != nil {
			return err
		}
		return printJSON(labels)

	case "decrypt-record":
		recordID, err := parseRecordID(args, "decrypt-record <record-id>")
		if err != nil {
			return err
		}
		requestID, err := client.RequestRecordDecryption(ctx, recordID)
		if err != nil {
			return err
		}
		fmt.Printf("request id: %s\n", requestID)
		return nil

	case "decrypt-count":
		if len(args) != 1 {
			return fmt.Errorf("usage: decrypt-count <label>")
		}
		requestID, err := client.RequestCountDecryption(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("request id: %s\n", requestID)
		return nil

	case "cancel":
		if len(args) != 1 {
			return fmt.Errorf("usage: cancel <request-id>")
		}
		if err := client.CancelDecryption(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("cancelled")
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func parseRecordID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", args[0])
	}
	return id, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
