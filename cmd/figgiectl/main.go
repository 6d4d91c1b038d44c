// Command figgiectl is a minimal one-shot reference client for exercising a
// running figgiesrv: join, poll state once, optionally submit one order or
// cancel. It is not an agent-side bot or dashboard; it makes exactly the
// HTTP calls a human operator would make by hand with curl, wrapped for
// convenience.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

func main() {
	var (
		addr   string
		name   string
		player string
		action string
		side   string
		suit   string
		price  int64
	)
	flag.StringVar(&addr, "addr", "http://127.0.0.1:5000", "figgiesrv base URL")
	flag.StringVar(&name, "join", "", "join the current round under this name, print the assigned player_id")
	flag.StringVar(&player, "player", "", "player_id to act as (required for state/order/cancel)")
	flag.StringVar(&action, "action", "state", "one of: state, order, cancel")
	flag.StringVar(&side, "side", "", "buy or sell for -action order; buy, sell or both (order_type) for -action cancel")
	flag.StringVar(&suit, "suit", "", "spades, clubs, hearts, diamonds, or all")
	flag.Int64Var(&price, "price", 0, "order price, or cancel threshold (-1 for all of mine)")
	flag.Parse()

	client := &http.Client{}

	if name != "" {
		pid, err := join(client, addr, name)
		if err != nil {
			fatal(err)
		}
		fmt.Println(pid)
		return
	}

	if player == "" {
		fatal(fmt.Errorf("figgiectl: -player is required unless -join is given"))
	}

	switch action {
	case "state":
		body, err := getState(client, addr, player)
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(body))
	case "order":
		body, err := postAction(client, addr, map[string]interface{}{
			"player_id": player, "action": "order", "side": side, "suit": suit, "price": price,
		})
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(body))
	case "cancel":
		body, err := postAction(client, addr, map[string]interface{}{
			"player_id": player, "action": "cancel", "order_type": side, "suit": suit, "price": price,
		})
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(body))
	default:
		fatal(fmt.Errorf("figgiectl: unknown -action %q", action))
	}
}

func join(client *http.Client, addr, name string) (string, error) {
	body, _ := json.Marshal(map[string]string{"name": name})
	resp, err := client.Post(addr+"/join", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var v struct {
		PlayerId string `json:"player_id"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return "", fmt.Errorf("figgiectl: join failed: %s", b)
	}
	return v.PlayerId, nil
}

func getState(client *http.Client, addr, player string) ([]byte, error) {
	resp, err := client.Get(addr + "/state?player_id=" + player)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func postAction(client *http.Client, addr string, payload map[string]interface{}) ([]byte, error) {
	body, _ := json.Marshal(payload)
	resp, err := client.Post(addr+"/action", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
