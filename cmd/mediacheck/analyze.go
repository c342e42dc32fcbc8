// ABOUTME: news and media commands submitting one analysis from the terminal
// ABOUTME: Prints the rendered result fragment or the decoded outcome as JSON

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mediacheck/core/domain"
	coreerrors "mediacheck/core/errors"
	"mediacheck/core/render"
)

// errAnalysisFailed makes the process exit non-zero after a Failure outcome was printed
var errAnalysisFailed = errors.New("analysis failed")

func newNewsCmd() *cobra.Command {
	var (
		text       string
		rawURL     string
		method     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Analyze a news text or article URL",
		Long:  `Submit a text (--text) or an article URL (--url) to the news detection endpoint.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req domain.NewsRequest
			switch {
			case cmd.Flags().Changed("text") && cmd.Flags().Changed("url"):
				return errors.New("use either --text or --url, not both")
			case cmd.Flags().Changed("url"):
				req = domain.NewURLRequest(rawURL)
			case cmd.Flags().Changed("text"):
				req = domain.NewTextRequest(text, method)
			default:
				return errors.New("one of --text or --url is required")
			}
			if err := req.Validate(); err != nil {
				return errors.New(coreerrors.UserMessage(err))
			}

			// Diagnostics go to stderr so stdout carries only the result
			a, err := loadApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			outcome, err := a.news.Submit(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printOutcome(cmd.OutOrStdout(), outcome, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Article text to analyze")
	cmd.Flags().StringVarP(&rawURL, "url", "u", "", "Article URL to analyze")
	cmd.Flags().StringVarP(&method, "method", "m", domain.DefaultMethod, "Detection method for text (ml or rule)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output results in JSON format")

	return cmd
}

func newMediaCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "media <file>",
		Short: "Check an image or video for deepfakes",
		Long:  `Upload a file to the deepfake detection endpoint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			a, err := loadApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if int64(len(data)) > a.cfg.Server.MaxUploadBytes {
				return &coreerrors.TooLargeError{Limit: a.cfg.Server.MaxUploadBytes}
			}

			outcome, err := a.deepfake.Submit(cmd.Context(), domain.NewUpload(filepath.Base(path), "", data))
			if err != nil {
				return err
			}
			return printOutcome(cmd.OutOrStdout(), outcome, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output results in JSON format")

	return cmd
}

// printOutcome writes the outcome as a result fragment or as JSON. A Failure is printed and
// reported as errAnalysisFailed.
func printOutcome(w io.Writer, outcome domain.Outcome, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			return err
		}
	} else {
		r, err := render.New()
		if err != nil {
			return err
		}
		switch outcome.(type) {
		case *domain.DeepfakeReport:
			err = r.Deepfake(w, outcome)
		default:
			err = r.News(w, outcome)
		}
		if err != nil {
			return err
		}
	}

	if _, ok := outcome.(*domain.Failure); ok {
		return errAnalysisFailed
	}
	return nil
}
