/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/ioschema"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var outputDir string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty output SQLite file with the snapshot schema",
		Long: `Create an empty YYYY-MM-DD_symbscan.sqlite file.

The file gets all tables of a snapshot, but no data. Nothing is
done if the file exists already. The source database is not used.

Examples:
  symbdb create
  symbdb create --output-dir /tmp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(cmd, outputDir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"directory of the output file")

	return createCmd
}

func runCreate(cmd *cobra.Command, outputDir string) error {
	if cmd.Flags().Changed("output-dir") {
		cfg.Update([]config.Option{config.OptOutputDir(outputDir)})
	}

	out := ioschema.New(cfg.OutputPath(), schema.CreateScript)
	created, err := out.Create(context.Background())
	if err != nil {
		return err
	}

	if !created {
		gn.Info("File <em>%s</em> exists already, nothing to do", out.Path())
		return nil
	}
	gn.Info("Created <em>%s</em>", out.Path())
	return nil
}
