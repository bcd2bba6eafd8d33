package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/java/smartenter"
)

func readSource(args []string) ([]byte, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read java file: %w", err)
	}
	return data, args[0], nil
}

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includeTrivia bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .java file and dump the tolerant syntax tree",
		Long: `Parse a .java file, or stdin, and dump the syntax tree.

Missing tokens show up as zero-width error leaves. The text format prints
the tree smart enter works on; json and yaml print the parser's nodes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, filename, err := readSource(args)
			if err != nil {
				return err
			}
			opts := []parser.Option{parser.WithFile(filename)}
			if includeTrivia {
				opts = append(opts, parser.WithTrivia())
			}
			node := parser.Parse(data, opts...)

			w := cmd.OutOrStdout()
			switch outputFormat {
			case "text":
				tree := smartenter.Convert(node, string(data), 0)
				_, err = io.WriteString(w, tree.Dump(smartenter.Grammar().KindName))
				return err
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&includeTrivia, "trivia", true, "keep whitespace and comments in the tree")

	return cmd
}
