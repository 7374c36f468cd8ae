package main

import (
	"fmt"
	"mime"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/redline/internal/legiscan"
)

func fetchCmd(log *logrus.Logger) *cobra.Command {
	var (
		out   string
		docID int
	)
	cmd := &cobra.Command{
		Use:   "fetch <bill-id>",
		Short: "Download a bill text from LegiScan (needs LEGISCAN_API_KEY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			billID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bill id %q is not a number", args[0])
			}
			client, err := legiscan.NewClient(os.Getenv("LEGISCAN_API_KEY"))
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			bill, err := client.Bill(ctx, billID)
			if err != nil {
				return err
			}
			if docID == 0 {
				ref, ok := bill.Latest()
				if !ok {
					return fmt.Errorf("bill %s has no texts", bill.Number)
				}
				docID = ref.DocID
			}
			text, err := client.BillText(ctx, docID)
			if err != nil {
				return err
			}

			if out == "" {
				out = bill.Number + extension(text.MIME)
			}
			if err := os.WriteFile(out, text.Doc, 0o644); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"bill":  bill.Number,
				"title": bill.Title,
				"doc":   docID,
				"path":  out,
			}).Info("Fetched bill text")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write (default: <bill number> plus the document extension)")
	cmd.Flags().IntVar(&docID, "doc-id", 0, "text version to fetch (default: the latest)")
	return cmd
}

func extension(mimeType string) string {
	if mimeType == "application/pdf" {
		return ".pdf"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
