// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*Package manifest reads a reads manifest and partitions it into samples.

  A manifest is a plain-text file with one read-file path per line. In
  interleaved mode every line is one sample. In paired mode the manifest is
  consumed in non-overlapping (even, odd) line pairs, and the sample ID is
  derived from the even ("forward") read only:

    /data/s1_R1.fq   -> sample 1, ID "s1"
    /data/s1_R2.fq
    /data/s2_R1.fq   -> sample 2, ID "s2"
    /data/s2_R2.fq

  Line order is significant: sample k (1-based) becomes PBS array task k.
  The manifest is never re-sorted.
*/
package manifest
