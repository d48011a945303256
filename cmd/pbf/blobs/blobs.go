// Copyright 2017-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blobs

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmpbf"
	"m4o.io/osmpbf/cmd/pbf/cli"
)

var (
	out   io.Writer = os.Stdout
	input *os.File
)

func init() {
	cli.RootCmd.AddCommand(blobsCmd)

	flags := blobsCmd.Flags()
	flags.VarP(cli.NewReaderValue(os.Stdin, &input, "file"), "input", "i", "OSM file to inspect")
}

var blobsCmd = &cobra.Command{
	Use:   "blobs [<OSM file>]",
	Short: "List the blobs of an OSM file",
	Long:  "List the blobs of an OSM file: byte offset, type tag, compression, and framed size",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := input

		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				log.Fatal(err)
			}

			in = f
		}

		defer func() {
			if in != os.Stdin {
				in.Close()
			}
		}()

		if err := runBlobs(in); err != nil {
			log.Fatal(err)
		}
	},
}

func runBlobs(in *os.File) error {
	rdr, err := newReader(in)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tTYPE\tCOMPRESSION\tSIZE")

	for blob, err := range rdr.Blobs() {
		if err != nil {
			return err
		}

		offset := "-"
		if o, ok := blob.Offset(); ok {
			offset = fmt.Sprintf("%d", o)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			offset, blob.Type(), blob.Compression(),
			humanize.IBytes(uint64(blob.DataSize())))
	}

	return w.Flush()
}

// newReader builds a seekable reader when the input supports it, so the
// listing carries byte offsets.
func newReader(in *os.File) (*osmpbf.BlobReader, error) {
	if in == os.Stdin {
		return osmpbf.NewBlobReader(in), nil
	}

	return osmpbf.NewSeekableBlobReader(in)
}
