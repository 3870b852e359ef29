package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/mscook/SeqFindR-nesoni/jobarray"
	"github.com/mscook/SeqFindR-nesoni/manifest"
)

// runFlags are the flags shared by generate and submit.
type runFlags struct {
	verbose     bool
	paired      bool
	interleaved bool
	delim       string
	cores       int
	memory      int
	nodeType    string
	walltime    time.Duration
	jobName     string
	qsub        string
	checkReads  bool
	strictMates bool
	parallelism int
}

func (f *runFlags) register(fs *flag.FlagSet) {
	d := jobarray.DefaultOpts
	fs.BoolVar(&f.verbose, "verbose", false, "Log start and end times and the elapsed time")
	fs.BoolVar(&f.paired, "paired", false, "Paired reads: the manifest lists forward and reverse reads on consecutive lines")
	fs.BoolVar(&f.interleaved, "interleaved", true, "Interleaved reads, one file per sample. -paired takes precedence")
	fs.StringVar(&f.delim, "delim", d.Delim, "A read file name is cut at the first occurrence of this string to get the sample ID")
	fs.IntVar(&f.cores, "cores", d.Cores, "CPU cores per sample, passed to nesoni --make-cores")
	fs.IntVar(&f.memory, "memory", d.MemoryGB, "Memory per sample, in GB")
	fs.StringVar(&f.nodeType, "node-type", d.NodeType, "PBS NodeType to request")
	fs.DurationVar(&f.walltime, "walltime", d.Walltime, "Wall-clock limit per sample")
	fs.StringVar(&f.jobName, "job-name", d.JobName, "PBS job name")
	fs.StringVar(&f.qsub, "qsub", "qsub", "Command used to submit the driver script")
	fs.BoolVar(&f.checkReads, "check-reads", false, "Open every read file and parse its first FASTQ record before generating")
	fs.BoolVar(&f.strictMates, "strict-mates", false, "Fail if paired read file names do not differ in exactly one character")
	fs.IntVar(&f.parallelism, "parallelism", d.Parallelism, "Number of read files checked concurrently by -check-reads")
}

// opts builds jobarray.Opts from the flags and the positional arguments
// reads_file, output_base and reference_dir.
func (f *runFlags) opts(argv []string) (jobarray.Opts, error) {
	if len(argv) != 3 {
		return jobarray.Opts{}, fmt.Errorf("expected reads_file output_base reference_dir, but got %v", argv)
	}
	o := jobarray.DefaultOpts
	o.ReadsFile, o.OutputBase, o.ReferenceDir = argv[0], argv[1], argv[2]
	mode, err := f.mode()
	if err != nil {
		return jobarray.Opts{}, err
	}
	o.Mode = mode
	o.Delim = f.delim
	o.Cores = f.cores
	o.MemoryGB = f.memory
	o.NodeType = f.nodeType
	o.Walltime = f.walltime
	o.JobName = f.jobName
	o.CheckReads = f.checkReads
	o.StrictMates = f.strictMates
	o.Parallelism = f.parallelism
	return o, o.Validate()
}

// mode returns Paired if -paired is set, else Interleaved. Turning off
// -interleaved without setting -paired leaves no mode.
func (f *runFlags) mode() (manifest.Mode, error) {
	switch {
	case f.paired:
		return manifest.Paired, nil
	case f.interleaved:
		return manifest.Interleaved, nil
	}
	return 0, fmt.Errorf("one of -paired or -interleaved must be set")
}
