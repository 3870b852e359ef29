package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/log"
	"github.com/mscook/SeqFindR-nesoni/jobarray"
	"github.com/mscook/SeqFindR-nesoni/manifest"
	"v.io/x/lib/cmdline"
)

// Version is printed by the version command.
const Version = "0.1"

const runArgsLong = `
<reads_file> is a text file with one read path per line, optionally
compressed. With -paired, forward and reverse reads are on consecutive lines.

<output_base> receives the generated scripts and, once the array runs, one
directory per sample holding <sample>_cons.fa. It is created if absent.

<reference_dir> is the directory created by "nesoni make-reference".
`

// run generates the job array, submits it with sub, and logs timing when
// verbose is set.
func run(ctx context.Context, f *runFlags, argv []string, sub jobarray.Submitter) error {
	opts, err := f.opts(argv)
	if err != nil {
		return err
	}
	start := time.Now()
	if f.verbose {
		log.Printf("Executing @ %s", start.Format(time.ANSIC))
	}
	if _, err = jobarray.Generate(ctx, opts, sub); err != nil {
		return err
	}
	if f.verbose {
		end := time.Now()
		log.Printf("Ended @ %s", end.Format(time.ANSIC))
		log.Printf("total time in minutes: %v", end.Sub(start).Minutes())
	}
	return nil
}

func newCmdSubmit() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "submit",
		Short:    "Generate a nesoni PBS job array and submit it",
		ArgsName: "<reads_file> <output_base> <reference_dir>",
		ArgsLong: runArgsLong,
	}
	f := &runFlags{}
	f.register(&cmd.Flags)
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return run(context.Background(), f, argv, jobarray.Qsub{Command: f.qsub})
	})
	return cmd
}

func newCmdGenerate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "generate",
		Short:    "Generate a nesoni PBS job array without submitting it",
		ArgsName: "<reads_file> <output_base> <reference_dir>",
		ArgsLong: runArgsLong,
	}
	f := &runFlags{}
	f.register(&cmd.Flags)
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return run(context.Background(), f, argv, jobarray.DryRun{Command: f.qsub})
	})
	return cmd
}

func newCmdIDs() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "ids",
		Short:    "Print the array index, sample ID, script and reads of every sample",
		ArgsName: "<reads_file>",
	}
	paired := cmd.Flags.Bool("paired", false, "Paired reads on consecutive lines")
	delim := cmd.Flags.String("delim", jobarray.DefaultOpts.Delim, "Sample ID delimiter")
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("ids takes one reads_file argument, but got %v", argv)
		}
		mode := manifest.Interleaved
		if *paired {
			mode = manifest.Paired
		}
		return printIDs(context.Background(), env.Stdout, argv[0], mode, *delim)
	})
	return cmd
}

func newCmdIndex() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "index",
		Short:    "Print the job index of a generated output base",
		ArgsName: "<output_base>",
	}
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("index takes one output_base argument, but got %v", argv)
		}
		return printIndex(context.Background(), env.Stdout, argv[0])
	})
	return cmd
}

func printIndex(ctx context.Context, w io.Writer, outputBase string) error {
	rows, err := jobarray.ReadIndex(ctx, filepath.Join(outputBase, jobarray.IndexName))
	if err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Index, r.Sample, r.Mode, r.Reads); err != nil {
			return err
		}
	}
	return nil
}

func newCmdStatus() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "status",
		Short:    "Report which samples of a generated output base have a consensus",
		ArgsName: "<output_base>",
		Long: `
status prints one line per sample: array index, sample ID, state, and for
finished samples the number of sequences, bases and ambiguous bases of
<sample>/<sample>_cons.fa. The state is one of pending, incomplete, failed
or done.
`,
	}
	parallelism := cmd.Flags.Int("parallelism", jobarray.DefaultOpts.Parallelism, "Number of consensus files read concurrently")
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("status takes one output_base argument, but got %v", argv)
		}
		return printStatus(context.Background(), env.Stdout, argv[0], *parallelism)
	})
	return cmd
}

func newCmdVersion() *cmdline.Command {
	return &cmdline.Command{
		Name:  "version",
		Short: "Print the version",
		Runner: cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
			_, err := fmt.Fprintf(env.Stdout, "seqfindr-nesoni %s\n", Version)
			return err
		}),
	}
}

// Run is the entry point of the seqfindr-nesoni binary.
func Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR, UNEXPECTED PANIC: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newRoot())
}

func newRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:  "seqfindr-nesoni",
		Short: "Generate a PBS job array that runs nesoni on every sample of a reads manifest",
		Long: `
seqfindr-nesoni writes one bash script per sample (nesoni_SeqFindR.1 ..
nesoni_SeqFindR.N) and a PBS Professional array driver (nesoni_SeqFindR.pbs)
into the output base, then submits the driver with qsub. Array task j runs
nesoni_SeqFindR.j.
`,
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdSubmit(),
			newCmdGenerate(),
			newCmdIDs(),
			newCmdIndex(),
			newCmdStatus(),
			newCmdVersion(),
		},
	}
}
