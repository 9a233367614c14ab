package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"resume-builder/internal/extract"
	"resume-builder/resume/model"
	"resume-builder/resume/parse"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Extract structured résumés from PDF and DOCX files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newRulesCmd())
	return root
}

type extractOptions struct {
	rulesFile string
	mimeType  string
	sections  bool
}

type sectionOutput struct {
	Kind      string   `json:"kind"`
	StartLine int      `json:"startLine"`
	Lines     []string `json:"lines"`
}

type extractOutput struct {
	File     string                `json:"file"`
	MimeType string                `json:"mimeType"`
	Record   model.ExtractedRecord `json:"record"`
	Sections []sectionOutput       `json:"sections,omitempty"`
}

func newExtractCmd() *cobra.Command {
	var opts extractOptions
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Decode a document and print the extracted record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "YAML rule table overriding the defaults")
	cmd.Flags().StringVar(&opts.mimeType, "mime", "", "declared MIME type (sniffed when empty)")
	cmd.Flags().BoolVar(&opts.sections, "sections", false, "include the recognized sections and their lines")
	return cmd
}

func runExtract(ctx context.Context, out io.Writer, path string, opts extractOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ex, err := extractorFor(opts.rulesFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	mimeType := extract.ResolveMimeType(opts.mimeType, name, data)

	text, err := extract.Decode(ctx, data, mimeType, name)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return fmt.Errorf("%s: only PDF and DOCX are supported (got %s)", name, mimeType)
		}
		return err
	}

	an := ex.Analyze(text)
	result := extractOutput{
		File:     name,
		MimeType: mimeType,
		Record:   an.Record,
	}
	if opts.sections {
		for _, s := range an.Sections {
			result.Sections = append(result.Sections, sectionOutput{
				Kind:      string(s.Kind),
				StartLine: s.StartLine,
				Lines:     s.Lines.Texts(),
			})
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func extractorFor(rulesFile string) (*parse.Extractor, error) {
	if rulesFile == "" {
		return parse.Default(), nil
	}
	rules, err := parse.LoadRules(rulesFile)
	if err != nil {
		return nil, err
	}
	return parse.New(rules)
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the default rule table as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(parse.DefaultRules()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
