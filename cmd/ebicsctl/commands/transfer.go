package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-ebics/internal/storage/file"
	"github.com/sirosfoundation/go-ebics/pkg/ebics"
	"github.com/sirosfoundation/go-ebics/pkg/message"
	"github.com/sirosfoundation/go-ebics/pkg/ordertype"
)

const dateLayout = "2006-01-02"

func sessionOptions(params map[string]string) []ebics.SessionOption {
	var opts []ebics.SessionOption
	for k, v := range params {
		opts = append(opts, ebics.WithParameter(k, v))
	}
	return opts
}

func uploadCmd() *cobra.Command {
	var params map[string]string
	cmd := &cobra.Command{
		Use:   "upload <order-type> <file>",
		Short: "Upload a file with an upload order type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			session, err := appCtx.session(ctx, sessionOptions(params)...)
			if err != nil {
				return err
			}
			result, err := appCtx.client.Upload(ctx, session, ordertype.Parse(args[0]), data, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(appCtx.out, "Uploaded %d bytes in %d segment(s), transaction %s",
				len(data), result.Segments, hex.EncodeToString(result.TransactionID))
			if result.OrderID != "" {
				fmt.Fprintf(appCtx.out, ", order %s", result.OrderID)
			}
			fmt.Fprintln(appCtx.out)
			return nil
		},
	}
	cmd.Flags().StringToStringVarP(&params, "param", "P", nil, "order parameter NAME=VALUE (FORMAT selects the file format)")
	return cmd
}

func downloadCmd() *cobra.Command {
	var (
		params     map[string]string
		output     string
		start, end string
	)
	cmd := &cobra.Command{
		Use:   "download <order-type>",
		Short: "Download order data with a download order type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var op *message.OrderParams
			if start != "" || end != "" {
				r, err := parseDateRange(start, end)
				if err != nil {
					return err
				}
				op = &message.OrderParams{DateRange: r}
			}
			session, err := appCtx.session(ctx, sessionOptions(params)...)
			if err != nil {
				return err
			}
			result, err := appCtx.client.Download(ctx, session, ordertype.Parse(args[0]), op)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = appCtx.out.Write(result.OrderData)
				return err
			}
			if err := file.WriteAtomic(output, result.OrderData, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			appCtx.logger.Info("download written", "file", output, "bytes", len(result.OrderData), "segments", result.Segments)
			return nil
		},
	}
	cmd.Flags().StringToStringVarP(&params, "param", "P", nil, "order parameter NAME=VALUE (FORMAT selects the file format)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write order data to this file (default: stdout)")
	cmd.Flags().StringVar(&start, "start", "", "first day of the date range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the date range (YYYY-MM-DD)")
	return cmd
}

func parseDateRange(start, end string) (*message.DateRange, error) {
	if start == "" || end == "" {
		return nil, fmt.Errorf("both --start and --end are required for a date range")
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid --end: %w", err)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("--end is before --start")
	}
	return &message.DateRange{Start: s, End: e}, nil
}
