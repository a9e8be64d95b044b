package cmd

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"vinylscan/internal/domain/lookup"
	"vinylscan/internal/infrastructure/discogs"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <barcode>",
	Short: "Look a barcode up on Discogs and print the envelope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := discogs.NewClient(discogs.Config{
			BaseURL:   cfg.Discogs.BaseURL,
			Token:     cfg.Discogs.Token,
			UserAgent: cfg.Discogs.UserAgent,
			Timeout:   cfg.Discogs.Timeout,
		}, log)
		defer client.Close()

		envelope, status := lookup.NewService(client, log).Lookup(cmd.Context(), args[0])

		out, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			return err
		}

		switch {
		case status != http.StatusOK:
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "lookup failed (%d)\n", status)
		case !envelope.Success:
			color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "no match")
		default:
			color.New(color.FgGreen).Fprintln(cmd.ErrOrStderr(), "match found")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		if status != http.StatusOK {
			return fmt.Errorf("%s", envelope.Message)
		}
		return nil
	},
}
