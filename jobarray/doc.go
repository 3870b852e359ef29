// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*Package jobarray generates and submits a PBS job array that runs nesoni
  analyse-sample once per sample of a reads manifest.

  For N samples, Generate writes the following files into the output base:

    nesoni_SeqFindR.1 .. nesoni_SeqFindR.N   one bash script per sample
    nesoni_SeqFindR.pbs                      the array driver, "#PBS -J 1-N"
    nesoni_SeqFindR.tsv                      array index -> sample and reads

  Array task j of the driver executes nesoni_SeqFindR.j. Each per-sample
  script stages the reference directory and the sample's reads into $TMPDIR,
  runs nesoni, keeps only consensus.fa (renamed <id>_cons.fa) and copies the
  sample directory back into the output base.

  The output base is passed explicitly to every step as Paths.Root; the
  process working directory is never changed.
*/
package jobarray
