package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"helperkit/core/config"
	"helperkit/core/logger"
	"helperkit/core/storage"
	"helperkit/feature/files"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// filesCmd groups the object storage maintenance commands.
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage files in the configured bucket",
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload [path]",
	Short: "Upload a local file to the bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFileService()
		if err != nil {
			return err
		}

		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return err
		}

		if err := svc.EnsureBucket(cmd.Context()); err != nil {
			return err
		}

		info, err := svc.Upload(cmd.Context(), filepath.Base(path), f, stat.Size(), "")
		if err != nil {
			return err
		}

		logg.Info("Uploaded", zap.String("name", info.Name), zap.Int64("size", info.Size))
		return nil
	},
}

var filesDownloadCmd = &cobra.Command{
	Use:   "download [name] [path]",
	Short: "Download an object to a local file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFileService()
		if err != nil {
			return err
		}

		rc, err := svc.Download(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer rc.Close()

		out, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer out.Close()

		n, err := io.Copy(out, rc)
		if err != nil {
			return err
		}

		logg.Info("Downloaded", zap.String("name", args[0]), zap.Int64("size", n))
		return out.Close()
	},
}

var filesListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List objects in the bucket",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newFileService()
		if err != nil {
			return err
		}

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		infos, err := svc.List(cmd.Context(), prefix)
		if err != nil {
			return err
		}

		for _, info := range infos {
			fmt.Printf("%-12d %-25s %s\n", info.Size, info.LastModified.Format(time.RFC3339), info.Name)
		}
		fmt.Printf("%d object(s)\n", len(infos))
		return nil
	},
}

var filesRemoveCmd = &cobra.Command{
	Use:   "remove [name...]",
	Short: "Remove objects from the bucket",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFileService()
		if err != nil {
			return err
		}

		if err := svc.DeleteMany(cmd.Context(), args); err != nil {
			return err
		}

		logg.Info("Removed", zap.Int("count", len(args)))
		return nil
	},
}

// newFileService wires config, logger and storage for the CLI commands.
func newFileService() (*files.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	// CLI output reads better on a console regardless of configured format.
	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	return files.NewService(store, cfg.Storage.Bucket, logg), logg, nil
}

func init() {
	filesCmd.AddCommand(filesUploadCmd)
	filesCmd.AddCommand(filesDownloadCmd)
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesRemoveCmd)
	RootCmd.AddCommand(filesCmd)
}
