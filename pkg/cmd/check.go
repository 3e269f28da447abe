// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/consensys/go-bounds/pkg/query"
	"github.com/consensys/go-bounds/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] script_file(s)",
	Short: "evaluate the queries of one or more scripts.",
	Long: `Evaluate the bounds queries of one or more query scripts, reporting the result of
	 each query against the line on which it is written.  Scripts are reevaluated
	 whenever they change if --watch is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config = query.Config{
				Jobs:     GetInt(cmd, "jobs"),
				Simplify: !GetFlag(cmd, "no-simplify"),
			}
			colour = !env.Bool("NO_COLOR") && term.IsTerminal(int(os.Stdout.Fd()))
			ok     = checkFiles(cmd.Context(), os.Stdout, args, config, colour)
		)
		//
		if GetFlag(cmd, "watch") {
			err := watchFiles(cmd.Context(), args, func(filename string) {
				checkFiles(cmd.Context(), os.Stdout, []string{filename}, config, colour)
			})
			//
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
		} else if !ok {
			os.Exit(4)
		}
	},
}

// Evaluate each script in turn, writing results (or errors) to the given
// output.  This returns false if any script could not be evaluated.
func checkFiles(ctx context.Context, out io.Writer, filenames []string, config query.Config,
	colour bool) bool {
	var ok = true
	//
	for _, filename := range filenames {
		files, err := source.ReadFiles(filename)
		//
		if err != nil {
			fmt.Fprintln(out, err)
			ok = false
		} else {
			ok = checkFile(ctx, out, files[0], config, colour) && ok
		}
	}
	//
	return ok
}

func checkFile(ctx context.Context, out io.Writer, srcfile *source.File, config query.Config, colour bool) bool {
	var serr *source.SyntaxError
	//
	log.Debugf("checking %s", srcfile.Filename())
	//
	script, errs := query.Read(srcfile)
	//
	if len(errs) > 0 {
		for i := range errs {
			printSyntaxError(out, &errs[i])
		}
		//
		return false
	}
	//
	results, err := query.Run(ctx, script, config)
	//
	if errors.As(err, &serr) {
		printSyntaxError(out, serr)
		return false
	} else if err != nil {
		fmt.Fprintln(out, err)
		return false
	}
	//
	if err := query.NewFormatter(out, colour).Write(srcfile.Filename(), results); err != nil {
		log.Error(err)
		return false
	}
	//
	return true
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("watch", "w", false, "reevaluate scripts whenever they change")
	checkCmd.Flags().Bool("no-simplify", false, "report results without simplifying them")
	checkCmd.Flags().IntP("jobs", "j", env.Int("BOUNDS_JOBS", runtime.NumCPU()),
		"maximum number of queries evaluated in parallel")
}
