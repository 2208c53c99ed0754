package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/seedstudio/internal/photo"
	"github.com/dukerupert/seedstudio/internal/transfer"
)

var flagFromS3 bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace garden data with a backup",
	Long: `Replace garden data with a backup file. Encrypted archives (.enc) need a
passphrase. With --s3 the argument is an object key in the backup bucket.
Nothing is written unless the whole backup is valid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]

		var r io.Reader
		if flagFromS3 {
			if !cfg.S3.Enabled() {
				return errors.New("import: --s3 needs s3.bucket and credentials configured")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			data, err := transfer.NewUploader(photo.NewS3Client(cfg.S3), cfg.S3, logger).Download(ctx, src)
			if err != nil {
				return err
			}
			r = bytes.NewReader(data)
		} else {
			f, err := os.Open(src)
			if err != nil {
				return fmt.Errorf("open backup: %w", err)
			}
			defer f.Close()
			r = f
		}

		var (
			p   *transfer.Parsed
			err error
		)
		if strings.HasSuffix(src, ".enc") || flagPassphrase != "" {
			pass := passphrase()
			if pass == "" {
				return errors.New("import: encrypted backup needs --passphrase or SEEDSTUDIO_BACKUP_PASSPHRASE")
			}
			p, err = transfer.OpenArchive(r, pass)
		} else {
			p, err = transfer.Parse(r)
		}
		if err != nil {
			return err
		}

		db, slots, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := transfer.Import(slots, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d seeds, %d logs, %d scheduled tasks (schema v%d)\n",
			len(p.Document.Seeds), len(p.Document.Logs), len(p.Document.ScheduledTasks), p.FromVersion)
		if p.Report.Changed() {
			fmt.Fprintln(cmd.OutOrStdout(), "corrected:", p.Report.String())
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&flagPassphrase, "passphrase", "", "backup passphrase")
	importCmd.Flags().BoolVar(&flagFromS3, "s3", false, "read the backup from the S3 bucket")
}
