// seqfindr-nesoni generates and submits a PBS job array that runs
// "nesoni analyse-sample" once per sample of a reads manifest.
//
// Usage: seqfindr-nesoni submit [-paired] reads.txt output_base reference_dir
package main

import "github.com/mscook/SeqFindR-nesoni/cmd/seqfindr-nesoni/cmd"

func main() {
	cmd.Run()
}
