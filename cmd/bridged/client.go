package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/atomiclabs/bridge/server"
)

var nodeAddr string

func init() {
	for _, cmd := range []*cobra.Command{initiateCmd, completeCmd, refundCmd, getCmd, listCmd} {
		cmd.Flags().StringVar(&nodeAddr, "node", "http://127.0.0.1:8545", "Daemon REST address")
	}

	initiateCmd.Flags().String("originator", "", "Locking identity")
	initiateCmd.Flags().String("recipient", "", "32-byte recipient identifier (hex)")
	initiateCmd.Flags().String("hash-lock", "", "32-byte keccak commitment (hex)")
	initiateCmd.Flags().String("secondary-amount", "0", "Pre-approved amount pulled from the custodian balance")
	initiateCmd.Flags().String("attached-amount", "0", "Amount attached natively to the call")
	initiateCmd.Flags().Uint64("lock-duration", 0, "Lock duration in clock units")
	initiateCmd.MarkFlagRequired("originator")
	initiateCmd.MarkFlagRequired("recipient")
	initiateCmd.MarkFlagRequired("hash-lock")
	initiateCmd.MarkFlagRequired("lock-duration")

	completeCmd.Flags().String("secret", "", "Secret whose keccak-256 equals the hash lock (hex)")
	completeCmd.MarkFlagRequired("secret")

	refundCmd.Flags().String("caller", "", "Refund authority identity")
	refundCmd.MarkFlagRequired("caller")
}

var initiateCmd = &cobra.Command{
	Use:   "initiate",
	Short: "Lock value under a hash commitment and a deadline",
	RunE: func(cmd *cobra.Command, args []string) error {
		originator, _ := cmd.Flags().GetString("originator")
		recipient, _ := cmd.Flags().GetString("recipient")
		hashLock, _ := cmd.Flags().GetString("hash-lock")
		secondary, _ := cmd.Flags().GetString("secondary-amount")
		attached, _ := cmd.Flags().GetString("attached-amount")
		lockDuration, _ := cmd.Flags().GetUint64("lock-duration")

		req := server.InitiateRequest{
			Originator:      originator,
			Recipient:       recipient,
			HashLock:        hashLock,
			SecondaryAmount: secondary,
			AttachedAmount:  attached,
			LockDuration:    lockDuration,
		}
		return post(cmd, "/v1/transfers", req)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <transfer-id>",
	Short: "Unlock a transfer by revealing its secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("secret")
		return post(cmd, "/v1/transfers/"+args[0]+"/complete", server.CompleteRequest{Secret: secret})
	},
}

var refundCmd = &cobra.Command{
	Use:   "refund <transfer-id>",
	Short: "Reclaim an expired transfer to its originator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, _ := cmd.Flags().GetString("caller")
		return post(cmd, "/v1/transfers/"+args[0]+"/refund", server.RefundRequest{Caller: caller})
	},
}

var getCmd = &cobra.Command{
	Use:   "get <transfer-id>",
	Short: "Show a transfer record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return get(cmd, "/v1/transfers/"+args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all transfer records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return get(cmd, "/v1/transfers")
	},
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

func post(cmd *cobra.Command, path string, body any) error {
	bz, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := httpClient.Post(nodeAddr+path, "application/json", bytes.NewReader(bz))
	if err != nil {
		return err
	}
	return printResponse(cmd, resp)
}

func get(cmd *cobra.Command, path string) error {
	resp, err := httpClient.Get(nodeAddr + path)
	if err != nil {
		return err
	}
	return printResponse(cmd, resp)
}

func printResponse(cmd *cobra.Command, resp *http.Response) error {
	defer resp.Body.Close()
	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(bz))
	}
	if len(bytes.TrimSpace(bz)) == 0 {
		cmd.Println("ok")
		return nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, bz, "", "  "); err != nil {
		cmd.Println(string(bz))
		return nil
	}
	cmd.Println(out.String())
	return nil
}
