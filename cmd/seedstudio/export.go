package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/seedstudio/internal/photo"
	"github.com/dukerupert/seedstudio/internal/transfer"
)

var (
	flagOut        string
	flagEncrypt    bool
	flagXLSX       bool
	flagUpload     bool
	flagPassphrase string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup of all garden data",
	Long: `Write a backup of all garden data as JSON. With --encrypt the backup is
sealed with a passphrase and may be uploaded to the configured S3 bucket with
--upload. --xlsx writes a spreadsheet report instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, slots, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		now := time.Now()
		doc := transfer.Export(slots, now)

		var (
			data []byte
			name string
		)
		switch {
		case flagXLSX:
			var buf bytes.Buffer
			if err := transfer.WriteReport(&buf, doc, now); err != nil {
				return err
			}
			data, name = buf.Bytes(), transfer.ReportName(now)
		case flagEncrypt || flagUpload:
			pass := passphrase()
			if pass == "" {
				return errors.New("export: a passphrase is required (--passphrase or SEEDSTUDIO_BACKUP_PASSPHRASE)")
			}
			if data, err = transfer.SealDocument(doc, pass); err != nil {
				return err
			}
			name = transfer.ArchiveName(now)
		default:
			var buf bytes.Buffer
			if err := transfer.WriteJSON(&buf, doc); err != nil {
				return err
			}
			data, name = buf.Bytes(), transfer.FileName(now)
		}

		if flagUpload {
			if !cfg.S3.Enabled() {
				return errors.New("export: --upload needs s3.bucket and credentials configured")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			uploader := transfer.NewUploader(photo.NewS3Client(cfg.S3), cfg.S3, logger)
			key, err := uploader.Upload(ctx, name, data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "uploaded", key)
			return nil
		}

		out := flagOut
		if out == "" {
			out = name
		}
		if out == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o600); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d seeds, %d logs)\n", out, len(doc.Seeds), len(doc.Logs))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file, - for stdout (default: dated file name)")
	exportCmd.Flags().BoolVar(&flagEncrypt, "encrypt", false, "seal the backup with a passphrase")
	exportCmd.Flags().BoolVar(&flagXLSX, "xlsx", false, "write a spreadsheet report")
	exportCmd.Flags().BoolVar(&flagUpload, "upload", false, "upload the encrypted backup to S3")
	exportCmd.Flags().StringVar(&flagPassphrase, "passphrase", "", "backup passphrase")
	exportCmd.MarkFlagsMutuallyExclusive("xlsx", "encrypt")
	exportCmd.MarkFlagsMutuallyExclusive("xlsx", "upload")
}

// passphrase prefers the flag over SEEDSTUDIO_BACKUP_PASSPHRASE.
func passphrase() string {
	if flagPassphrase != "" {
		return flagPassphrase
	}
	return os.Getenv("SEEDSTUDIO_BACKUP_PASSPHRASE")
}
